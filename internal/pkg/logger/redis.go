package logger

import (
	"Atlania/internal/pkg/consts"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisSlow = 100 * time.Millisecond

// 这些前缀下的 key 带有令牌签名或 OAuth state，日志中只保留前缀
var maskedKeyPrefixes = []string{
	consts.RevokedTokenKey,
	consts.OAuthStateKey,
}

// RedisHook 命令级日志：出错记 Error，超过阈值记 Warn
type RedisHook struct {
	slow time.Duration
}

func NewRedisHook(slow time.Duration) *RedisHook {
	if slow <= 0 {
		slow = defaultRedisSlow
	}
	return &RedisHook{slow: slow}
}

func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "redis dial failed",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.report(ctx, "redis command", time.Since(start), err,
			log.String("command", cmd.Name()),
			log.String("args", describeArgs(cmd.Name(), cmd.Args())),
		)
		return err
	}
}

func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		names := make([]string, 0, len(cmds))
		for _, c := range cmds {
			names = append(names, c.Name())
		}
		h.report(ctx, "redis pipeline", time.Since(start), err,
			log.Int("cmd_count", len(cmds)),
			log.String("commands", strings.Join(names, ",")),
		)
		return err
	}
}

func (h *RedisHook) report(ctx context.Context, msg string, elapsed time.Duration, err error, attrs ...any) {
	attrs = append(attrs, log.Duration("latency", elapsed))
	switch {
	case err != nil && !ignorableRedisErr(err):
		log.ErrorContext(ctx, msg+" failed", append(attrs, log.Any("err", err))...)
	case elapsed > h.slow:
		log.WarnContext(ctx, msg+" slow", attrs...)
	}
}

// redis.Nil 是缓存未命中；CLIENT SETINFO 在旧版本服务端上会报错，可以忽略
func ignorableRedisErr(err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "setinfo")
}

func describeArgs(name string, args []any) string {
	if name == "auth" || name == "hello" {
		return "[PROTECTED]"
	}
	parts := make([]string, 0, len(args))
	for i, a := range args {
		s := fmt.Sprint(a)
		if i == 1 {
			s = maskKey(s)
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func maskKey(key string) string {
	for _, p := range maskedKeyPrefixes {
		if strings.HasPrefix(key, p) {
			return p + "***"
		}
	}
	return key
}
