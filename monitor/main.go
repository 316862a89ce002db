package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/guardian/simmonitor/common/helpers"
	"github.com/guardian/simmonitor/common/models"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const (
	EXIT_OK                = 0
	EXIT_USAGE             = 2
	EXIT_NO_HOST           = 3
	EXIT_NO_JOB_ID         = 4
	EXIT_SCHEDULER_FAILURE = 5
	EXIT_LAUNCH_FAILURE    = 6
)

const DEFAULT_CONFIG_PATH = "config/monitorconfig.yaml"

func ExitCodeForState(state models.RunState) int {
	if state == models.STATE_NO_JOB_ID {
		return EXIT_NO_JOB_ID
	}
	return EXIT_OK
}

/**
a missing config file at the default location just means "use the defaults"; anything else is a problem
*/
func LoadConfig(configPath string) (*helpers.Config, error) {
	config, err := helpers.ReadConfig(configPath)
	if err != nil {
		if os.IsNotExist(err) && configPath == DEFAULT_CONFIG_PATH {
			log.Printf("INFO: No config at %s, using defaults", configPath)
			return helpers.DefaultConfig(), nil
		}
		return nil, err
	}
	return config, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", DEFAULT_CONFIG_PATH, "yaml config `file`")
	modeString := flag.String("mode", string(models.MODE_CAPTURE), "launch mode, capture (read the job id from the submission output) or detach (find it from the job list)")
	interval := flag.Int("interval", 0, "sample memory every this many `seconds`. overrides the config and POLL_INTERVAL")
	logDir := flag.String("logdir", "", "write the run log into this `directory`. overrides the config")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] \"<simulation command>\" [file-to-check]\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 || strings.TrimSpace(args[0]) == "" {
		flag.Usage()
		return EXIT_USAGE
	}
	mode, validMode := models.ParseLaunchMode(*modeString)
	if !validMode {
		log.Printf("ERROR: -mode must be capture or detach, not '%s'", *modeString)
		flag.Usage()
		return EXIT_USAGE
	}
	var watchFile string
	if len(args) == 2 {
		watchFile = args[1]
		if mode != models.MODE_CAPTURE {
			log.Printf("WARNING: file information is only recorded in capture mode, ignoring %s", watchFile)
		}
	}

	config, configErr := LoadConfig(*configPath)
	if configErr != nil {
		log.Printf("ERROR: No usable configuration: %s", configErr)
		return EXIT_USAGE
	}
	config.ApplyEnvironment()
	if *interval > 0 {
		config.Monitor.PollIntervalSeconds = *interval
	}
	if *logDir != "" {
		config.Monitor.LogDir = *logDir
	}
	log.Printf("DEBUG: configuration is %s", spew.Sdump(config))

	scheduler, schedErr := NewLsfScheduler(config.Scheduler)
	if schedErr != nil {
		log.Printf("ERROR: Invalid scheduler configuration: %s", schedErr)
		return EXIT_USAGE
	}

	host, hostErr := SelectHost(scheduler, config.Scheduler.HostGroup)
	if hostErr != nil {
		if hostErr == ErrNoHostAvailable {
			return EXIT_NO_HOST
		}
		return EXIT_SCHEDULER_FAILURE
	}

	var redisPublisher *RedisPublisher
	if config.Redis.Address != "" {
		redisClient, redisErr := SetupRedis(config)
		if redisErr != nil {
			log.Printf("WARNING: Samples will only be written to the log file")
		} else {
			redisPublisher = NewRedisPublisher(redisClient)
		}
	}
	var samplePublisher SamplePublisher
	if redisPublisher != nil {
		samplePublisher = redisPublisher
	}

	rc := NewRunContext(host, mode, config.Monitor.LogDir)
	log.Printf("INFO: Run %s logging to %s", rc.RunId, rc.LogPath)

	launcher := &JobLauncher{
		Shell:          config.Scheduler.Shell,
		SubmitKeyword:  config.Scheduler.SubmitKeyword,
		OutputEncoding: scheduler.OutputEncoding(),
		Discoverer:     NewJobIdDiscoverer(scheduler, config.DiscoveryDelay(), config.Monitor.DiscoveryAttempts),
		Terminal:       os.Stdout,
		ErrTerminal:    os.Stderr,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			log.Printf("INFO: Received %s", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	sub, launchErr := launcher.Launch(mode, launcher.PrepareCommand(args[0], host))
	if launchErr != nil {
		log.Printf("ERROR: Could not start the simulation: %s", launchErr)
		return EXIT_LAUNCH_FAILURE
	}

	lifecycle := NewLifecycle(rc, NewMemoryPoller(scheduler, samplePublisher), config.PollInterval(), watchFile)
	finalState := lifecycle.Run(ctx, sub)

	if redisPublisher != nil {
		pubErr := redisPublisher.PublishSummary(rc.Summary(finalState, time.Now()))
		if pubErr != nil {
			log.Printf("WARNING: Could not store the run summary: %s", pubErr)
		}
	}

	fmt.Printf("Simulation finished (%s), log file saved at: %s\n", finalState, rc.LogPath)
	return ExitCodeForState(finalState)
}
