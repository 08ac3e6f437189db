package captcha

import (
	"github.com/decker502/luobo-captcha/pkg/game"
)

const tick = 1.0 / 60.0

// cueCall 一次 Play 调用
type cueCall struct {
	key  string
	opts game.PlayOptions
}

// fakeCues 记录调用的 CuePlayer
type fakeCues struct {
	calls    []cueCall
	stopAlls int
	result   game.PlayResult
}

func newFakeCues() *fakeCues {
	return &fakeCues{result: game.PlayStarted}
}

func (f *fakeCues) Play(key string, opts game.PlayOptions) game.PlayResult {
	f.calls = append(f.calls, cueCall{key: key, opts: opts})
	return f.result
}

func (f *fakeCues) StopAll() {
	f.stopAlls++
}

func (f *fakeCues) last() cueCall {
	if len(f.calls) == 0 {
		return cueCall{}
	}
	return f.calls[len(f.calls)-1]
}

// fakeSounds 记录调用的 SoundPlayer
type fakeSounds struct {
	played []string
}

func (f *fakeSounds) PlaySound(path string) bool {
	f.played = append(f.played, path)
	return true
}

// scriptedRandom 按顺序返回预设值，用完后返回 0
type scriptedRandom struct {
	ints   []int
	floats []float64
}

func (r *scriptedRandom) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// advance 以 60 FPS 推进 seconds 秒，额外多推进两帧抵消浮点误差
func advance(update func(float64), seconds float64) {
	ticks := int(seconds*60) + 2
	for i := 0; i < ticks; i++ {
		update(tick)
	}
}

// counter 回调计数
type counter struct {
	success int
	failure int
	close   int
}

func (c *counter) callbacks() Callbacks {
	return Callbacks{
		OnSuccess: func() { c.success++ },
		OnFailure: func() { c.failure++ },
		OnClose:   func() { c.close++ },
	}
}
