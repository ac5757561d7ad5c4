package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// lumberjack 的 Close 不会停止 millRun
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
		goleak.IgnoreTopFunction("github.com/redis/go-redis/v9/internal/pool.(*ConnPool).tryDial"),
		goleak.IgnoreTopFunction("github.com/redis/go-redis/v9/maintnotifications.(*CircuitBreakerManager).cleanupLoop"),
		goleak.IgnoreTopFunction("time.Sleep"),
	)
}

// smallRun 足够小、可在毫秒级完成的工作负载参数
var smallRun = []string{
	"--size", "200", "--queries", "2000", "--hot-pool", "5", "--capacity", "20", "--seed", "7",
}

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), append([]string{"rangebench"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Success(t *testing.T) {
	code, out, errOut := execute(t, append([]string{"run"}, smallRun...)...)

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "run id")
	assert.Contains(t, out, "N=200 Q=2000")
	assert.Contains(t, out, "K=20")
	assert.Contains(t, out, "hit-rate=")
	assert.Contains(t, out, "invalidations=")
	assert.NotContains(t, out, "metrics:")
}

func TestRun_IsDefaultCommand(t *testing.T) {
	code, out, errOut := execute(t, smallRun...)

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "N=200 Q=2000")
	assert.Contains(t, out, "seed=7")
	assert.Contains(t, out, "K=20")

	// 全局选项与 run 参数可以混写
	code, out, errOut = execute(t, append([]string{"--metrics"}, smallRun...)...)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "xrangesum.hits.total")

	code, out, errOut = execute(t, "-n", "150", "-q", "500", "-k", "8", "--seed", "7")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "N=150 Q=500")
	assert.Contains(t, out, "K=8")
}

func TestRun_ChecksumsAgree(t *testing.T) {
	code, out, _ := execute(t, append([]string{"run"}, smallRun...)...)
	require.Equal(t, 0, code)

	var line string
	for l := range strings.SplitSeq(out, "\n") {
		if strings.HasPrefix(l, "checksum") {
			line = l
		}
	}
	require.NotEmpty(t, line)

	var baseline, cached string
	for f := range strings.FieldsSeq(line) {
		if v, ok := strings.CutPrefix(f, "baseline="); ok {
			baseline = v
		}
		if v, ok := strings.CutPrefix(f, "cached="); ok {
			cached = v
		}
	}
	assert.NotEmpty(t, baseline)
	assert.Equal(t, baseline, cached)
}

func TestRun_Metrics(t *testing.T) {
	code, out, errOut := execute(t, append([]string{"--metrics", "run"}, smallRun...)...)

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "metrics:")
	assert.Contains(t, out, "xrangesum.hits.total")
	assert.Contains(t, out, "xrangesum.invalidation.scanned")
	assert.Contains(t, out, "rangekit.operation.duration")
}

func TestRun_JSONLogs(t *testing.T) {
	code, _, errOut := execute(t, append([]string{"--log-format", "json", "run"}, smallRun...)...)

	require.Equal(t, 0, code)
	assert.Contains(t, errOut, `"msg":"comparison finished"`)
	assert.Contains(t, errOut, `"run_id"`)
}

func TestRun_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.log")
	code, _, errOut := execute(t, append([]string{"--log-file", path, "run"}, smallRun...)...)

	require.Equal(t, 0, code, errOut)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "comparison finished")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"run", "--bogus"}},
		{"zero capacity", []string{"run", "--capacity", "0"}},
		{"bad probability", []string{"run", "--hot-prob", "1.5"}},
		{"empty array", []string{"run", "--size", "0"}},
		{"bad log level", []string{"--log-level", "loud", "run", "--size", "10", "--queries", "1"}},
		{"missing config file", []string{"-c", "/nonexistent/bench.yaml", "run"}},
		{"unsupported config format", []string{"-c", "bench.toml", "run"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, tt.args...)
			assert.Equal(t, 2, code, errOut)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestRun_ConfigPrecedence(t *testing.T) {
	path := writeFile(t, "bench.yaml", `
run:
  capacity: 15
  workload:
    size: 300
    queries: 1000
    hot_pool: 4
    seed: 3
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		code, out, errOut := execute(t, "-c", path, "run")
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, "N=300 Q=1000")
		assert.Contains(t, out, "K=15")
		assert.Contains(t, out, "seed=3")
	})

	t.Run("flags override file", func(t *testing.T) {
		code, out, errOut := execute(t, "-c", path, "run", "--size", "250", "--capacity", "9")
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, "N=250 Q=1000")
		assert.Contains(t, out, "K=9")
	})
}

func TestRun_ConfigFileJSON(t *testing.T) {
	path := writeFile(t, "bench.json", `{"run":{"capacity":0}}`)

	code, _, errOut := execute(t, "-c", path, "run")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "run.capacity")
}

func TestRun_ConfigStrict(t *testing.T) {
	t.Run("misspelled key rejected", func(t *testing.T) {
		path := writeFile(t, "bench.yaml", "run:\n  capcity: 5\n")
		code, _, errOut := execute(t, "-c", path, "run")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "capcity")
	})

	t.Run("log level from file", func(t *testing.T) {
		path := writeFile(t, "bench.yaml", "log:\n  level: debug\n")
		code, _, errOut := execute(t, append([]string{"-c", path, "run"}, smallRun...)...)
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, errOut, "replay finished")
	})

	t.Run("flag overrides file level", func(t *testing.T) {
		path := writeFile(t, "bench.yaml", "log:\n  level: debug\n")
		code, _, errOut := execute(t, append([]string{"-c", path, "--log-level", "warn", "run"}, smallRun...)...)
		require.Equal(t, 0, code, errOut)
		assert.NotContains(t, errOut, "replay finished")
	})

	t.Run("invalid level in file", func(t *testing.T) {
		path := writeFile(t, "bench.json", `{"log":{"level":"loud"}}`)
		code, _, errOut := execute(t, "-c", path, "run")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "loud")
	})
}

func TestLimit_Local(t *testing.T) {
	code, out, errOut := execute(t, "limit")

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "store: local, window: 10s, max per user: 1")
	assert.Contains(t, out, "=== message stream ===")
	assert.Contains(t, out, "waiting 4s...")
	assert.Contains(t, out, "=== new batch after pause ===")

	// 前 5 条消息分属 5 个不同用户，全部放行
	for _, line := range []string{
		"message  1 | user 2 | ✓",
		"message  2 | user 3 | ✓",
		"message  3 | user 4 | ✓",
		"message  4 | user 5 | ✓",
		"message  5 | user 1 | ✓",
	} {
		assert.Contains(t, out, line)
	}
	// 第 6 条回到用户 2，距第 1 条不超过 5s，仍在 10s 窗口内
	assert.Contains(t, out, "message  6 | user 2 | × (wait ")
	assert.Contains(t, out, "message 20 |")
	assert.NotContains(t, out, "message 21 |")
}

func TestLimit_WideWindowAllowsAll(t *testing.T) {
	code, out, errOut := execute(t, "limit", "--max", "100", "--messages", "5")

	require.Equal(t, 0, code, errOut)
	assert.NotContains(t, out, "×")
	assert.Equal(t, 10, strings.Count(out, "✓"))
}

func TestLimit_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	code, out, errOut := execute(t, "limit", "--redis", mr.Addr())

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "store: redis")
	assert.Contains(t, out, "message  1 | user 2 | ✓")
	assert.Contains(t, out, "message  6 | user 2 | × (wait ")

	// 结果与本地存储一致
	_, local, _ := execute(t, "limit")
	assert.Equal(t, strings.SplitN(local, "\n", 2)[1], strings.SplitN(out, "\n", 2)[1])
}

func TestLimit_Metrics(t *testing.T) {
	code, out, errOut := execute(t, "--metrics", "limit", "--messages", "4")

	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "xlimit.requests.total")
	// 每次存储访问都经过观测器
	assert.Contains(t, out, "rangekit.operation.total")
}

func TestLimit_Errors(t *testing.T) {
	t.Run("invalid window", func(t *testing.T) {
		code, _, errOut := execute(t, "limit", "--window", "0s")
		assert.Equal(t, 2, code, errOut)
	})
	t.Run("invalid delays", func(t *testing.T) {
		code, _, errOut := execute(t, "limit", "--min-delay", "2s", "--max-delay", "1s")
		assert.Equal(t, 2, code, errOut)
	})
	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		code, _, errOut := execute(t, "limit", "--redis", addr)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "connect redis")
	})
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, Version)
}
