package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/mmdraft/internal/credential"
)

// secretStore is the part of the keyring the key commands write to.
type secretStore interface {
	Set(key, value string) error
	Delete(key string) error
}

func openKeyring() (secretStore, error) {
	return credential.Open()
}

func newSetKeyCmd(openStore func() (secretStore, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <item>",
		Short: "Store an API key in the system keyring",
		Long: "Reads the secret from the first line of stdin and stores it under <item>. " +
			"Reference it from config.ini with ApiKey = keyring:<item>.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := itemName(args[0])
			if err != nil {
				return err
			}
			secret, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Set(item, secret); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %q; reference it with ApiKey = keyring:%s\n", item, item)
			return nil
		},
	}
}

func newDeleteKeyCmd(openStore func() (secretStore, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key <item>",
		Short: "Remove an API key from the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := itemName(args[0])
			if err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Delete(item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", item)
			return nil
		},
	}
}

func itemName(arg string) (string, error) {
	item := strings.TrimSpace(arg)
	if item == "" {
		return "", errors.New("item name must not be empty")
	}
	return item, nil
}

func readSecret(stdin io.Reader) (string, error) {
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	secret := strings.TrimSpace(line)
	if secret == "" {
		return "", errors.New("reading secret: stdin is empty")
	}
	return secret, nil
}
