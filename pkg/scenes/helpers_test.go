package scenes

import (
	"testing"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/components"
	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/game"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// quietCues 只记录调用次数的 CuePlayer
type quietCues struct {
	plays    []string
	stopAlls int
}

func (q *quietCues) Play(key string, _ game.PlayOptions) game.PlayResult {
	q.plays = append(q.plays, key)
	return game.PlayStarted
}

func (q *quietCues) StopAll() { q.stopAlls++ }

// zeroRandom 永远返回 0
type zeroRandom struct{}

func (zeroRandom) IntN(int) int      { return 0 }
func (zeroRandom) Float64() float64 { return 0 }

func newTestHost(t *testing.T, opts captcha.HostOptions) (*captcha.Host, *quietCues) {
	t.Helper()
	catalog, err := config.LoadCatalog("../../data/captcha.yaml")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	cues := &quietCues{}
	return captcha.NewHost(catalog, cues, zeroRandom{}, opts), cues
}

func newTestAssets() *Assets {
	return NewAssets(game.NewResourceManager(nil, ""), nil, "")
}

type pointerHandler interface {
	HandlePointer(event utils.PointerEvent, x, y float64)
}

// tap 在同一点按下并松开
func tap(h pointerHandler, x, y float64) {
	h.HandlePointer(utils.PointerPressed, x, y)
	h.HandlePointer(utils.PointerReleased, x, y)
}

// tapButton 点击按钮中心
func tapButton(h pointerHandler, b *components.ButtonComponent) {
	tap(h, b.X+b.Width/2, b.Y+b.Height/2)
}
