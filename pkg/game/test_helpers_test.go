package game

import "errors"

// fakeClip 记录播放/停止调用的假音频
// playing 在 Play 后为 true，直到 Stop 或 finish
type fakeClip struct {
	path    string
	playing bool
	plays   int
	stops   int
}

func (c *fakeClip) Play()           { c.playing = true; c.plays++ }
func (c *fakeClip) Stop()           { c.playing = false; c.stops++ }
func (c *fakeClip) IsPlaying() bool { return c.playing }

// finish 模拟音频自然播放结束
func (c *fakeClip) finish() { c.playing = false }

// fakeLoader 按路径返回 fakeClip，missing 中的路径返回错误
type fakeLoader struct {
	clips   map[string]*fakeClip
	loads   map[string]int
	missing map[string]bool
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		clips:   make(map[string]*fakeClip),
		loads:   make(map[string]int),
		missing: make(map[string]bool),
	}
}

func (l *fakeLoader) LoadClip(path string) (Clip, error) {
	l.loads[path]++
	if l.missing[path] {
		return nil, errors.New("file not found")
	}
	clip := &fakeClip{path: path}
	l.clips[path] = clip
	return clip, nil
}

// playingClips 返回所有正在播放的音频
func (l *fakeLoader) playingClips() []*fakeClip {
	var result []*fakeClip
	for _, c := range l.clips {
		if c.playing {
			result = append(result, c)
		}
	}
	return result
}

// scriptedRandom 依次返回预设值，用完后返回 0
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
	return v % n
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}
