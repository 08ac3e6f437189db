package captcha

import (
	"fmt"
	"strings"

	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/game"
)

// SuccessCue 答对时播放的提示音 cue key（"真棒"）
const SuccessCue = "zhenbang"

// Status 验证码状态
type Status int

const (
	// StatusPending 等待用户操作
	StatusPending Status = iota
	// StatusVerifying 已提交，等待验证延迟结束
	StatusVerifying
	// StatusSuccess 验证成功（终态）
	StatusSuccess
	// StatusFailure 验证失败的短暂展示状态（仅九宫格 strict 策略）
	StatusFailure
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusVerifying:
		return "verifying"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// CuePlayer 提示音播放能力
// 由 game.CueOrchestrator 实现，测试中使用假实现
type CuePlayer interface {
	Play(key string, opts game.PlayOptions) game.PlayResult
	StopAll()
}

// SoundPlayer 一次性音效播放能力（不经过提示音编排器）
// 由 game.AudioManager 实现
type SoundPlayer interface {
	PlaySound(path string) bool
}

// GridPolicy 九宫格"验证"按钮策略
type GridPolicy int

const (
	// GridPolicySkip 验证按钮始终可用，空选择即"跳过"；答错后清空选择并重播提示音
	GridPolicySkip GridPolicy = iota
	// GridPolicyStrict 必须至少选择一个格子；答错后短暂显示失败并通知宿主
	GridPolicyStrict
)

// String 返回策略在配置中的名称
func (p GridPolicy) String() string {
	switch p {
	case GridPolicySkip:
		return config.GridPolicySkip
	case GridPolicyStrict:
		return config.GridPolicyStrict
	default:
		return fmt.Sprintf("GridPolicy(%d)", int(p))
	}
}

// ParseGridPolicy 解析配置中的策略名称（不区分大小写）
func ParseGridPolicy(name string) (GridPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case config.GridPolicySkip, "":
		return GridPolicySkip, nil
	case config.GridPolicyStrict:
		return GridPolicyStrict, nil
	default:
		return GridPolicySkip, fmt.Errorf("unknown grid policy %q", name)
	}
}
