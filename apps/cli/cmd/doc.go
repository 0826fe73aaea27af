// Package cmd wires the reqvault CLI commands.
package cmd
