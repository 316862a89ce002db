package models

import (
	"regexp"
	"strings"
)

var submissionJobIdParser = regexp.MustCompile(`Job <(\d+)>`)
var numericJobId = regexp.MustCompile(`^\d+$`)

/**
finds the job id that the scheduler prints on submission, e.g. "Job <4321> is submitted to queue <normal>."
returns a NoMatchError if there is none
*/
func ExtractJobId(output string) (string, error) {
	match := submissionJobIdParser.FindStringSubmatch(output)
	if match == nil {
		return "", &NoMatchError{Expected: "job id"}
	}
	return match[1], nil
}

/**
returns the job ids from a running-job listing, in the order the scheduler printed them.
header lines and "No unfinished job found" style messages are ignored because their first column is not numeric.
*/
func ParseRunningJobIds(output string) []string {
	result := make([]string, 0)
	for _, line := range strings.Split(output, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if numericJobId.MatchString(parts[0]) {
			result = append(result, parts[0])
		}
	}
	return result
}
