package main

import (
	"log"
	"regexp"
	"strings"
)

var hostFlagMatcher = regexp.MustCompile(`(^|\s)-m\s+\S+`)

/**
the raw command comes straight from the shell that invoked us, so any escaping backslashes are dropped
*/
func CleanCommand(raw string) string {
	return strings.Replace(raw, "\\", "", -1)
}

/**
pins the command to the given host.
if it already carries a "-m <host>" flag the flag's argument is replaced (and nothing else is touched); otherwise
"-m <host>" is inserted straight after the first occurrence of the submit keyword.
if neither is possible the command is returned unchanged and a warning logged
*/
func PinCommandToHost(command string, submitKeyword string, host string) string {
	if hostFlagMatcher.MatchString(command) {
		return hostFlagMatcher.ReplaceAllString(command, "${1}-m "+host)
	}

	keywordMatcher := regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(submitKeyword) + `(\s|$)`)
	location := keywordMatcher.FindStringSubmatchIndex(command)
	if location == nil {
		log.Printf("WARNING: command does not contain '%s' or a -m option, submitting it unchanged: %s", submitKeyword, command)
		return command
	}
	//location[3] is the end of the leading boundary group, so the keyword starts there
	keywordEnd := location[3] + len(submitKeyword)
	return command[:keywordEnd] + " -m " + host + command[keywordEnd:]
}
