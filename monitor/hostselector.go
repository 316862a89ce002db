package main

import (
	"errors"
	"github.com/guardian/simmonitor/common/models"
	"log"
)

var ErrNoHostAvailable = errors.New("no available host")

/**
asks the scheduler for the hosts in the given group and returns the ones that can take a job, in the order the
scheduler listed them. a failed query returns the scheduler's error; no eligible hosts is an empty slice
*/
func ListAvailableHosts(scheduler Scheduler, group string) ([]models.Host, error) {
	output, err := scheduler.HostStatus(group)
	if err != nil {
		log.Printf("ERROR: Could not list hosts for %s: %s", group, err)
		return nil, err
	}
	return models.AvailableHosts(models.ParseHostListing(output)), nil
}

/**
picks the first available host. there is no load-based ranking
*/
func SelectHost(scheduler Scheduler, group string) (string, error) {
	hosts, err := ListAvailableHosts(scheduler, group)
	if err != nil {
		return "", err
	}
	if len(hosts) == 0 {
		log.Printf("ERROR: No host in %s is available", group)
		return "", ErrNoHostAvailable
	}
	log.Printf("INFO: Selected host %s (%d available)", hosts[0].Name, len(hosts))
	return hosts[0].Name, nil
}
