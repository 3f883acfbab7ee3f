package tui

import "strings"

// command is a parsed slash command from the chat input.
type command struct {
	name string
	args []string
}

// parseCommand splits an input line into a slash command and its arguments.
// Lines not starting with "/" are questions, reported by ok=false.
func parseCommand(line string) (command, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return command{}, false
	}

	fields := strings.Fields(line)
	return command{
		name: strings.TrimPrefix(fields[0], "/"),
		args: fields[1:],
	}, true
}

const helpText = `Commands:
  /connect <url>    connect to a different API
  /reconnect        re-run the connection check
  /add <path>...    add files to the pending batch
  /remove <n>       remove pending file n
  /upload           upload the pending batch
  /rmfile <n>       remove uploaded file n
  /files            list uploaded and pending files
  /session          show the session id and time remaining
  /help             show this help
  /quit             exit
Anything else is sent as a question about your documents.`
