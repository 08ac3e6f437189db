package game

import (
	"log"
	"time"

	"github.com/decker502/luobo-captcha/pkg/components"
)

// Clip 一段可播放的音频
// 由 AudioManager 基于 Ebitengine audio.Player 实现，测试中使用假实现
type Clip interface {
	Play()
	Stop()
	IsPlaying() bool
}

// ClipLoader 按路径加载并解码音频
type ClipLoader interface {
	LoadClip(path string) (Clip, error)
}

// PlayOptions 提示音播放参数
type PlayOptions struct {
	// Force 为 true 时打断正在播放或等待播放的提示音
	// 为 false 时如果编排器忙碌则不播放
	Force bool
	// Delay 延迟播放时间，<= 0 表示立即播放
	Delay time.Duration
}

// PlayResult Play 的结果
type PlayResult int

const (
	// PlayNoClips cue key 没有绑定任何音频，什么也不做
	PlayNoClips PlayResult = iota
	// PlayBusy 非强制请求遇到正在播放/等待播放的提示音，未改变现有安排
	PlayBusy
	// PlayStarted 已立即开始播放
	PlayStarted
	// PlayScheduled 已安排延迟播放
	PlayScheduled
)

// Accepted 请求是否被接受（立即播放或已安排）
func (r PlayResult) Accepted() bool {
	return r == PlayStarted || r == PlayScheduled
}

// String 返回可读名称（用于日志）
func (r PlayResult) String() string {
	switch r {
	case PlayNoClips:
		return "no-clips"
	case PlayBusy:
		return "busy"
	case PlayStarted:
		return "started"
	case PlayScheduled:
		return "scheduled"
	default:
		return "unknown"
	}
}

// CueOrchestrator 提示音编排器
//
// 职责：
//   - 预加载每个 cue key 绑定的一组音频
//   - 保证任意时刻最多只有一个提示音在播放或等待播放
//   - 区分强制请求（先停止再播放）和非强制请求（忙碌时忽略）
//   - 支持延迟播放，延迟由 Update(deltaTime) 推进
//
// 整个应用只创建一个实例，由 App 注入到各验证码中。
// 所有方法都应在游戏循环所在的 goroutine 中调用，不是并发安全的。
type CueOrchestrator struct {
	loader   ClipLoader
	random   Random
	bindings map[string][]string // cue key -> 音频路径
	clips    map[string][]Clip   // cue key -> 已加载音频（与 bindings 下标对齐，加载失败为 nil）

	current    Clip                       // 当前播放的音频
	currentKey string                     // 当前播放音频所属的 cue key
	pending    *components.TimerComponent // 等待中的延迟播放
}

// NewCueOrchestrator 创建提示音编排器
//
// 参数：
//   - loader: 音频加载器
//   - random: 随机源（用于在一组音频中随机挑选）
//   - bindings: cue key -> 音频路径列表
//
// 返回：
//   - *CueOrchestrator: 编排器实例
func NewCueOrchestrator(loader ClipLoader, random Random, bindings map[string][]string) *CueOrchestrator {
	copied := make(map[string][]string, len(bindings))
	for key, paths := range bindings {
		copied[key] = append([]string(nil), paths...)
	}

	return &CueOrchestrator{
		loader:   loader,
		random:   random,
		bindings: copied,
		clips:    make(map[string][]Clip),
	}
}

// Preload 预加载 cue key 绑定的所有音频
// 已加载的音频不会重复加载，可以反复调用
func (o *CueOrchestrator) Preload(key string) {
	paths := o.bindings[key]
	for i := range paths {
		o.clipAt(key, i)
	}
}

// PreloadAll 预加载全部 cue
func (o *CueOrchestrator) PreloadAll() {
	for key := range o.bindings {
		o.Preload(key)
	}
	log.Printf("[CueOrchestrator] Preloaded %d cues", len(o.bindings))
}

// Play 请求播放 cue key 对应的一个随机音频
//
// 参数：
//   - key: cue key（如 "luobo"、"zhenbang"）
//   - opts: 是否强制、延迟时间
//
// 返回：
//   - PlayResult: PlayNoClips / PlayBusy / PlayStarted / PlayScheduled
func (o *CueOrchestrator) Play(key string, opts PlayOptions) PlayResult {
	paths := o.bindings[key]
	if len(paths) == 0 {
		log.Printf("[CueOrchestrator] Cue %q has no clips, skipped", key)
		return PlayNoClips
	}

	if !opts.Force && o.IsBusy() {
		return PlayBusy
	}

	// 先停止再开始，避免两个提示音同时出现
	o.StopAll()

	index := o.random.IntN(len(paths))

	if opts.Delay <= 0 {
		o.start(key, index)
		return PlayStarted
	}

	o.pending = &components.TimerComponent{
		Name:       key,
		TargetTime: opts.Delay.Seconds(),
		OnFire: func() {
			o.start(key, index)
		},
	}
	return PlayScheduled
}

// StopAll 取消等待中的延迟播放并停止当前音频
// 没有任何播放时调用也是安全的
func (o *CueOrchestrator) StopAll() {
	if o.pending != nil {
		o.pending.Cancelled = true
		o.pending = nil
	}
	if o.current != nil {
		o.current.Stop()
		o.current = nil
		o.currentKey = ""
	}
}

// IsBusy 是否有音频正在播放或等待播放
func (o *CueOrchestrator) IsBusy() bool {
	if o.pending.Active() {
		return true
	}
	return o.current != nil && o.current.IsPlaying()
}

// HasPending 是否有等待中的延迟播放
func (o *CueOrchestrator) HasPending() bool {
	return o.pending.Active()
}

// PendingKey 返回等待播放的 cue key，没有则为空
func (o *CueOrchestrator) PendingKey() string {
	if !o.pending.Active() {
		return ""
	}
	return o.pending.Name
}

// CurrentKey 返回正在播放的 cue key，没有则为空
func (o *CueOrchestrator) CurrentKey() string {
	if o.current == nil || !o.current.IsPlaying() {
		return ""
	}
	return o.currentKey
}

// Update 推进延迟播放计时器
func (o *CueOrchestrator) Update(deltaTime float64) {
	timer := o.pending
	if !timer.Active() {
		return
	}

	timer.CurrentTime += deltaTime
	if timer.CurrentTime < timer.TargetTime {
		return
	}

	timer.IsReady = true
	o.pending = nil
	timer.OnFire()
}

// start 立即播放指定下标的音频
func (o *CueOrchestrator) start(key string, index int) {
	clip := o.clipAt(key, index)
	if clip == nil {
		log.Printf("[CueOrchestrator] Warning: clip %d of cue %q unavailable", index, key)
		return
	}

	clip.Play()
	o.current = clip
	o.currentKey = key
}

// clipAt 获取或加载指定下标的音频
func (o *CueOrchestrator) clipAt(key string, index int) Clip {
	paths := o.bindings[key]
	if index < 0 || index >= len(paths) {
		return nil
	}

	loaded := o.clips[key]
	if loaded == nil {
		loaded = make([]Clip, len(paths))
		o.clips[key] = loaded
	}
	if loaded[index] != nil {
		return loaded[index]
	}

	if o.loader == nil {
		return nil
	}
	clip, err := o.loader.LoadClip(paths[index])
	if err != nil {
		log.Printf("[CueOrchestrator] Warning: Failed to load %s: %v", paths[index], err)
		return nil
	}
	loaded[index] = clip
	return clip
}
