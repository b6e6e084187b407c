// Package logging provides file-based structured logging with rotation for
// mdq. Logs are written as JSON records under ~/.mdq/logs/ so the terminal
// stays free for command output; the --debug flag raises the level to debug
// and mirrors records to stderr.
package logging
