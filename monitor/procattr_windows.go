package main

import "os/exec"

func detachProcessGroup(cmd *exec.Cmd) {}
