package boost

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Munyola/boostsrl/pkg/boostsrl/engine"
	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
	"github.com/Munyola/boostsrl/pkg/boostsrl/results"
)

// Engine invokes the BoostSRL jar as a child process. One invocation per
// Train/Infer call, blocking until the process exits; stdout and stderr
// go to the job's log file, never to the caller's streams.
type Engine struct {
	Java     string // java binary, defaults to "java"
	BoostJar string
	AUCJar   string
	Debug    bool // echo the argv before running
}

// New returns an Engine for the given jar paths.
func New(boostJar, aucJar string) *Engine {
	return &Engine{BoostJar: boostJar, AUCJar: aucJar}
}

// Train implements engine.Engine.
func (e *Engine) Train(ctx context.Context, job engine.TrainJob) error {
	return e.run(ctx, e.trainArgs(job), job.LogPath)
}

// Infer implements engine.Engine. After the process exits cleanly the
// inference log is scanned for the engine's threshold line.
func (e *Engine) Infer(ctx context.Context, job engine.InferJob) (float64, error) {
	if err := e.run(ctx, e.inferArgs(job), job.LogPath); err != nil {
		return 0, err
	}

	logText, err := os.ReadFile(job.LogPath)
	if err != nil {
		return 0, fmt.Errorf("%w: reading inference log: %v", internalerr.ErrParse, err)
	}
	return results.ParseThreshold(string(logText))
}

func (e *Engine) trainArgs(job engine.TrainJob) []string {
	return []string{
		"-jar", e.BoostJar,
		"-l",
		"-train", job.TrainDir,
		"-target", job.Target,
		"-trees", strconv.Itoa(job.Trees),
	}
}

func (e *Engine) inferArgs(job engine.InferJob) []string {
	return []string{
		"-jar", e.BoostJar,
		"-i",
		"-test", job.TestDir,
		"-model", job.ModelDir,
		"-target", job.Target,
		"-trees", strconv.Itoa(job.Trees),
		"-aucJarPath", e.AUCJar,
	}
}

func (e *Engine) java() string {
	if e.Java != "" {
		return e.Java
	}
	return "java"
}

// run executes one engine invocation with output redirected to logPath.
// The argv is passed as a list, never through a shell.
func (e *Engine) run(ctx context.Context, args []string, logPath string) error {
	logFile, err := os.Create(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if e.Debug {
		log.Printf("boostsrl: exec %s %s", e.java(), strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, e.java(), args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v (log: %s)", internalerr.ErrProcess, err, logPath)
	}
	return nil
}
