package helpers

import (
	"gopkg.in/yaml.v2"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"time"
)

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DBNum    int    `yaml:"dbNum"`
}

/**
how to talk to the batch scheduler. the command names are configurable so that the monitor can be pointed at
wrapper scripts, or at fakes when testing on a machine without LSF
*/
type SchedulerConfig struct {
	HostGroup      string `yaml:"hostgroup"`
	HostsCommand   string `yaml:"hostscommand"`
	JobsCommand    string `yaml:"jobscommand"`
	SubmitKeyword  string `yaml:"submitkeyword"`
	Shell          string `yaml:"shell"`
	OutputEncoding string `yaml:"outputencoding"`
}

type MonitorConfig struct {
	PollIntervalSeconds   int    `yaml:"pollinterval"`
	LogDir                string `yaml:"logdir"`
	DiscoveryDelaySeconds int    `yaml:"discoverydelay"`
	DiscoveryAttempts     int    `yaml:"discoveryattempts"`
}

type Config struct {
	Redis     RedisConfig     `yaml:"redis"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Monitor   MonitorConfig   `yaml:"monitor"`
}

const (
	DEFAULT_HOST_GROUP         = "adas_gls"
	DEFAULT_POLL_INTERVAL      = 600
	DEFAULT_DISCOVERY_DELAY    = 5
	DEFAULT_DISCOVERY_ATTEMPTS = 3
)

func DefaultConfig() *Config {
	conf := &Config{}
	conf.ApplyDefaults()
	return conf
}

/**
fill in anything that was left unset in the config file
*/
func (c *Config) ApplyDefaults() {
	if c.Scheduler.HostGroup == "" {
		c.Scheduler.HostGroup = DEFAULT_HOST_GROUP
	}
	if c.Scheduler.HostsCommand == "" {
		c.Scheduler.HostsCommand = "bhosts"
	}
	if c.Scheduler.JobsCommand == "" {
		c.Scheduler.JobsCommand = "bjobs"
	}
	if c.Scheduler.SubmitKeyword == "" {
		c.Scheduler.SubmitKeyword = "bsub"
	}
	if c.Scheduler.Shell == "" {
		c.Scheduler.Shell = "/bin/sh"
	}
	if c.Monitor.PollIntervalSeconds <= 0 {
		c.Monitor.PollIntervalSeconds = DEFAULT_POLL_INTERVAL
	}
	if c.Monitor.LogDir == "" {
		c.Monitor.LogDir = "."
	}
	if c.Monitor.DiscoveryDelaySeconds <= 0 {
		c.Monitor.DiscoveryDelaySeconds = DEFAULT_DISCOVERY_DELAY
	}
	if c.Monitor.DiscoveryAttempts <= 0 {
		c.Monitor.DiscoveryAttempts = DEFAULT_DISCOVERY_ATTEMPTS
	}
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Monitor.PollIntervalSeconds) * time.Second
}

func (c *Config) DiscoveryDelay() time.Duration {
	return time.Duration(c.Monitor.DiscoveryDelaySeconds) * time.Second
}

/**
POLL_INTERVAL in the environment takes precedence over the config file.
an unparseable value is reported and ignored
*/
func (c *Config) ApplyEnvironment() {
	stringVal := os.Getenv("POLL_INTERVAL")
	if stringVal == "" {
		return
	}
	value, err := strconv.ParseInt(stringVal, 10, 32)
	if err != nil || value <= 0 {
		log.Printf("WARNING: Invalid value for POLL_INTERVAL (not a positive integer): '%s'", stringVal)
		return
	}
	c.Monitor.PollIntervalSeconds = int(value)
}

func ReadConfig(configFile string) (*Config, error) {
	configBytes, readErr := ioutil.ReadFile(configFile)
	if readErr != nil {
		log.Printf("Could not read config from '%s': %s\n", configFile, readErr)
		return nil, readErr
	}

	var conf Config

	err := yaml.Unmarshal(configBytes, &conf)
	if err != nil {
		log.Printf("Could not understand config from '%s': %s\n", configFile, err)
		return nil, err
	}
	conf.ApplyDefaults()
	return &conf, nil
}
