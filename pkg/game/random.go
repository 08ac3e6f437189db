package game

import (
	"math/rand/v2"
	"time"
)

// Random 所有随机抽样的唯一入口
// 验证码实例化、提示音选择、重试延迟都通过它取随机数，测试可以注入固定序列
type Random interface {
	// IntN 返回 [0, n) 的随机整数，n 必须 > 0
	IntN(n int) int
	// Float64 返回 [0, 1) 的随机浮点数
	Float64() float64
}

// NewRandom 创建可复现的随机源
//
// 参数：
//   - seed: 随机种子，0 表示使用当前时间
//
// 返回：
//   - Random: PCG 随机源
func NewRandom(seed uint64) Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomDuration 返回 [min, max] 区间内均匀分布的时长
func RandomDuration(r Random, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(r.Float64()*float64(max-min))
}
