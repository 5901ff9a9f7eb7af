package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword lee la contraseña de un archivo, de la terminal sin eco o, sin terminal, de una línea de stdin.
func (a *app) readPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("leer %s: %w", passwordFile, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	fd := int(os.Stdin.Fd())
	if a.env.stdin == os.Stdin && term.IsTerminal(fd) {
		fmt.Fprint(a.env.stderr, "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(a.env.stderr)
		if err != nil {
			return "", fmt.Errorf("leer contraseña: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(a.env.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("leer contraseña de stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// terminalWidth ancho de stdout; 80 si no es una terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
