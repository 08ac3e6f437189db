package utils

import "math"

// 缓动函数，用于验证结果遮罩的淡入和对勾弹出
// 输入进度 t ∈ [0, 1]，超出范围会先被截断
//
// 参考：https://easings.net/

// Progress 把已经过的时间换算为 [0, 1] 进度
// duration <= 0 时直接返回 1
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return clamp01(elapsed / duration)
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseOutBack 带回弹的缓出，中途会超过 1 再回落
// 公式：f(t) = 1 + c3(t-1)³ + c1(t-1)²，c1 = 1.70158，c3 = c1 + 1
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	t = clamp01(t)
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
