package models

import "strings"

type HostStatus string

const HOST_OK HostStatus = "ok"

/**
a compute node as reported by the scheduler's host listing.
this is never stored, it's fetched fresh on every run
*/
type Host struct {
	Name   string     `json:"name"`
	Status HostStatus `json:"status"`
}

func (h Host) Available() bool {
	return h.Status == HOST_OK
}

/**
parses the tabular output of a host status listing. the first line is a header and is skipped, and so is any row
with fewer than two columns. column 0 is the host name and column 1 the status token.
*/
func ParseHostListing(output string) []Host {
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		return []Host{}
	}

	hosts := make([]Host, 0, len(lines)-1)
	for _, line := range lines[1:] {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		hosts = append(hosts, Host{Name: parts[0], Status: HostStatus(parts[1])})
	}
	return hosts
}

/**
filters the given hosts down to those that can take a job, preserving order
*/
func AvailableHosts(hosts []Host) []Host {
	result := make([]Host, 0, len(hosts))
	for _, h := range hosts {
		if h.Available() {
			result = append(result, h)
		}
	}
	return result
}
