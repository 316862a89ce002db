package main

import (
	"errors"
	"github.com/guardian/simmonitor/common/models"
	"sync"
)

/**
canned scheduler responses. DetailOutputs and RunningOutputs are handed out in order, the last one repeating
*/
type SchedulerMock struct {
	mutex          sync.Mutex
	HostOutput     string
	HostError      error
	DetailOutputs  []string
	DetailError    error
	RunningOutputs []string
	RunningError   error

	HostGroupsAsked []string
	DetailCalls     int
	RunningCalls    int
}

func mockQueryError(command string) error {
	return &models.SchedulerQueryError{Command: command, ExitCode: 255, Err: errors.New("exit status 255")}
}

func nextOutput(outputs []string, call int) string {
	if len(outputs) == 0 {
		return ""
	}
	if call >= len(outputs) {
		return outputs[len(outputs)-1]
	}
	return outputs[call]
}

func (m *SchedulerMock) HostStatus(group string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.HostGroupsAsked = append(m.HostGroupsAsked, group)
	if m.HostError != nil {
		return "", m.HostError
	}
	return m.HostOutput, nil
}

func (m *SchedulerMock) JobDetail(jobId string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	call := m.DetailCalls
	m.DetailCalls += 1
	if m.DetailError != nil {
		return "", m.DetailError
	}
	return nextOutput(m.DetailOutputs, call), nil
}

func (m *SchedulerMock) RunningJobs() (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	call := m.RunningCalls
	m.RunningCalls += 1
	if m.RunningError != nil {
		return "", m.RunningError
	}
	return nextOutput(m.RunningOutputs, call), nil
}

func (m *SchedulerMock) DetailCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.DetailCalls
}
