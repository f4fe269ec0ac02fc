package main

import (
	"fmt"

	"gopkg.in/urfave/cli.v1"
)

var keyFlags = []cli.Flag{
	cli.Int64Flag{
		Name:  "n",
		Usage: "key modulus",
	},
	cli.Int64Flag{
		Name:  "exp, e",
		Usage: "key exponent",
	},
}

var cmds = cli.Commands{
	{
		Name:    "demo",
		Usage:   "Run the Alice and Bob scenario and print the chain.",
		Aliases: []string{"d"},
		Action:  demo,
		Flags: []cli.Flag{
			cli.Uint64Flag{
				Name:  "proof",
				Value: 12345,
				Usage: "seed passed to the block sealing",
			},
		},
	},
	{
		Name:    "keygen",
		Usage:   "Generate a key pair.",
		Aliases: []string{"k"},
		Action:  keygen,
		Flags: []cli.Flag{
			cli.Int64Flag{
				Name:  "min-modulus",
				Usage: "smallest acceptable modulus",
			},
		},
	},
	{
		Name:      "encrypt",
		Usage:     "Encrypt a message with a key.",
		ArgsUsage: "MESSAGE",
		Action:    encrypt,
		Flags:     keyFlags,
	},
	{
		Name:      "decrypt",
		Usage:     "Decrypt a ciphertext with a key.",
		ArgsUsage: "CIPHERTEXT",
		Action:    decrypt,
		Flags:     keyFlags,
	},
	{
		Name:      "sign",
		Usage:     "Sign a message with a private key.",
		ArgsUsage: "MESSAGE",
		Action:    sign,
		Flags:     keyFlags,
	},
	{
		Name:      "verify",
		Usage:     "Verify a signature with a public key.",
		ArgsUsage: "MESSAGE",
		Description: fmt.Sprint(`
            app verify --n N --exp E --signature "SIG" MESSAGE
	    `),
		Action: verify,
		Flags: append([]cli.Flag{
			cli.StringFlag{
				Name:  "signature, s",
				Usage: "space separated signature tokens",
			},
		}, keyFlags...),
	},
}
