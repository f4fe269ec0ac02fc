package main

import (
	"context"
	"strings"
	"testing"

	minichain "minichain"

	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"
)

func TestRunDemo(t *testing.T) {
	cfg := minichain.DefaultConfig()
	cfg.Chain.Difficulty = 2
	chain, err := runDemo(context.Background(), cfg, 12345)
	require.NoError(t, err)
	require.NoError(t, chain.Verify())

	blocks := chain.Chain()
	require.Len(t, blocks, 2)
	require.True(t, strings.HasPrefix(blocks[1].Hash(), "00"))

	table := chainTable(blocks)
	require.Len(t, table, 3)
	require.Equal(t, "Index", table[0][0])
	require.Equal(t, "", table[1][2])
	require.Equal(t, blocks[0].Hash(), table[2][2])
	require.Equal(t, "Alice->Bob:10, Bob->Charlie:5", table[2][5])
}

func newTestApp() *cli.App {
	app := cli.NewApp()
	app.Commands = cmds
	app.Flags = []cli.Flag{cli.StringFlag{Name: "config, c"}}
	return app
}

func TestCryptoCommands(t *testing.T) {
	app := newTestApp()
	require.NoError(t, app.Run([]string{"app", "encrypt", "--n", "3233", "--exp", "17", "AA"}))
	require.NoError(t, app.Run([]string{"app", "decrypt", "--n", "3233", "--exp", "2753", "2790 2790"}))
	require.NoError(t, app.Run([]string{"app", "sign", "--n", "3233", "--exp", "2753", "hello"}))
	require.NoError(t, app.Run([]string{"app", "keygen", "--min-modulus", "256"}))

	require.Error(t, app.Run([]string{"app", "encrypt", "AA"}))
	require.Error(t, app.Run([]string{"app", "encrypt", "--n", "6", "--exp", "5", "AA"}))
	require.Error(t, app.Run([]string{"app", "decrypt", "--n", "3233", "--exp", "2753", "x"}))
	require.Error(t, app.Run([]string{"app", "encrypt", "--n", "3233", "--exp=-1", "=A"}))
	require.Error(t, app.Run([]string{"app", "decrypt", "--n", "3233", "--exp=-1", "61"}))
	require.Error(t, app.Run([]string{"app", "verify", "--n", "3233", "--exp", "17",
		"--signature", "1 2 3", "hello"}))
}
