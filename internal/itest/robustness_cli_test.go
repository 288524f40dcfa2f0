//go:build integration

package itest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 30 * time.Second

type robustCase struct {
	name            string
	args            func(t *testing.T, repoRoot string) []string
	env             map[string]string
	wantContains    []string
	wantNotContains []string
}

type cliRunResult struct {
	exitCode int
	output   string
}

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	sample := writeSample(t)

	cases := []robustCase{
		{
			name: "no args",
			args: staticArgs(),
			wantContains: []string{
				"accepts 1 arg(s), received 0",
			},
		},
		{
			name: "too many args",
			args: staticArgs(sample, "extra"),
			wantContains: []string{
				"accepts 1 arg(s), received 2",
			},
		},
		{
			name: "unknown flag",
			args: staticArgs(sample, "--wat"),
			wantContains: []string{
				"unknown flag: --wat",
			},
		},
		{
			name: "pad non float",
			args: staticArgs(sample, "--start-pad", "nope"),
			wantContains: []string{
				`invalid argument "nope" for "--start-pad"`,
			},
		},
		{
			name: "negative pad",
			args: staticArgs(sample, "--end-pad", "-1", "--transcript", "t.json"),
			wantContains: []string{
				"config: pads must be >= 0",
			},
		},
		{
			name: "job id escapes storage dirs",
			args: staticArgs(sample, "--job-id", "../victim", "--transcript", "t.json"),
			wantContains: []string{
				`config: job id "../victim" must not contain path separators`,
			},
		},
		{
			name: "no transcript and no model",
			args: staticArgs(sample),
			env: map[string]string{
				"FILLERCUT_WHISPER_MODEL": "",
			},
			wantContains: []string{
				"config: whisper model path is required",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func TestRobustness_InvalidInput(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	sample := writeSample(t)

	cases := []robustCase{
		{
			name: "missing input path",
			args: staticArgs(filepath.Join(repoRoot, "does-not-exist.mp4"), "--transcript", "t.json"),
			wantContains: []string{
				"config: stat input:",
			},
		},
		{
			name: "input is directory",
			args: staticArgs(repoRoot, "--transcript", "t.json"),
			wantContains: []string{
				"is a directory",
			},
		},
		{
			name: "transcript missing",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				return []string{sample, "--transcript", filepath.Join(t.TempDir(), "nope.json"), "--out", t.TempDir()}
			},
			wantContains: []string{
				"read transcript:",
			},
		},
		{
			name: "bad filler vocabulary",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				p := filepath.Join(t.TempDir(), "f.yaml")
				if err := os.WriteFile(p, []byte("patterns: [\"(um\"]\n"), 0o644); err != nil {
					t.Fatalf("write vocabulary fixture: %v", err)
				}
				return []string{sample, "--transcript", "t.json", "--fillers", p}
			},
			wantContains: []string{
				`filler pattern "(um"`,
			},
		},
		{
			name: "out points to file",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				tmp := t.TempDir()
				outFile := filepath.Join(tmp, "out-file")
				if err := os.WriteFile(outFile, []byte("x"), 0o644); err != nil {
					t.Fatalf("write out file fixture: %v", err)
				}
				return []string{sample, "--transcript", "t.json", "--out", outFile}
			},
			wantContains: []string{
				"not a directory",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func writeSample(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "sample.mp4")
	if err := os.WriteFile(p, []byte("not really media"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return p
}

func runRobustCases(t *testing.T, repoRoot string, cases []robustCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, repoRoot, tc.args(t, repoRoot), tc.env)
			if res.exitCode == 0 {
				t.Fatalf("expected non-zero exit code, got 0\noutput:\n%s", res.output)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(res.output, want) {
					t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
				}
			}
			for _, notWant := range tc.wantNotContains {
				if strings.Contains(res.output, notWant) {
					t.Fatalf("expected output to not contain %q\noutput:\n%s", notWant, res.output)
				}
			}
		})
	}
}

func runCLI(t *testing.T, repoRoot string, args []string, env map[string]string) cliRunResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmdArgs := append([]string{"run", "./cmd/fillercut"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = repoRoot
	cmd.Env = mergeEnv(
		os.Environ(),
		map[string]string{
			"NO_COLOR": "1",
			"TERM":     "dumb",
		},
		env,
	)

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("command timed out after %s: go %s", cliTimeout, strings.Join(cmdArgs, " "))
	}

	res := cliRunResult{output: string(out)}
	if err == nil {
		res.exitCode = 0
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.exitCode = exitErr.ExitCode()
		return res
	}

	t.Fatalf("run command: %v\noutput:\n%s", err, string(out))
	return cliRunResult{}
}

func mergeEnv(base []string, overrides ...map[string]string) []string {
	env := make(map[string]string, len(base))
	for _, kv := range base {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}

	for _, set := range overrides {
		for k, v := range set {
			env[k] = v
		}
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

func staticArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append([]string(nil), clone...)
	}
}
