package captcha

import (
	"reflect"
	"testing"

	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/game"
)

const clickSoundPath = "/sounds/click.wav"

// gridTemplate luobo 为按钮形式，zhijin、baobao 为图片形式
func gridTemplate() *config.GridTemplate {
	return &config.GridTemplate{
		PromptTemplate: "请选择所有{target}",
		Items: []config.Item{
			{Name: "luobo", Label: "萝卜", Variants: []config.Variant{
				{Kind: config.VariantButton, Images: config.ButtonImages{Up: "/btns/luobo-up.jpg", Down: "/btns/luobo-down.jpg"}},
			}},
			{Name: "zhijin", Label: "纸巾", Variants: []config.Variant{
				{Kind: config.VariantImage, Image: "/btns/zhijin-pic.jpg"},
			}},
			{Name: "baobao", Label: "包包", Variants: []config.Variant{
				{Kind: config.VariantImage, Image: "/btns/baobao-pic.jpg"},
			}},
		},
	}
}

// gridDraws 按抽取顺序生成随机序列：正确答案，然后每格（物品，展示形式）
func gridDraws(correct int, cells [GridCellCount]int) []int {
	draws := []int{correct}
	for _, item := range cells {
		draws = append(draws, item, 0)
	}
	return draws
}

func newGrid(policy GridPolicy, correct int, cells [GridCellCount]int, cues *fakeCues, sounds *fakeSounds, c *counter) *GridChallenge {
	random := &scriptedRandom{ints: gridDraws(correct, cells)}
	opts := GridOptions{Policy: policy, ClickSound: clickSoundPath}
	if sounds != nil {
		opts.Sounds = sounds
	}
	return NewGridChallenge(gridTemplate(), cues, random, c.callbacks(), opts)
}

// 格子 1、4 是萝卜，其余是纸巾
var luoboAt1And4 = [GridCellCount]int{0, 1, 1, 0, 1, 1, 1, 1, 1}

func tap(g *GridChallenge, id int) {
	g.PressCell(id)
	g.ReleaseCell(id)
}

func TestGridChallengeInstantiate(t *testing.T) {
	cues := newFakeCues()
	g := newGrid(GridPolicySkip, 0, luoboAt1And4, cues, nil, &counter{})

	cells := g.Cells()
	if len(cells) != GridCellCount {
		t.Fatalf("cells = %d, want %d", len(cells), GridCellCount)
	}
	for i, cell := range cells {
		if cell.ID != i+1 {
			t.Errorf("cell %d has ID %d", i, cell.ID)
		}
	}
	if name, label := g.CorrectItem(); name != "luobo" || label != "萝卜" {
		t.Errorf("CorrectItem = %s/%s", name, label)
	}
	if g.Prompt() != "请选择所有萝卜" {
		t.Errorf("Prompt = %q", g.Prompt())
	}
	if !reflect.DeepEqual(g.CorrectIDs(), []int{1, 4}) {
		t.Errorf("CorrectIDs = %v, want [1 4]", g.CorrectIDs())
	}
	if cells[0].Variant.Kind != config.VariantButton || cells[1].Variant.Kind != config.VariantImage {
		t.Error("cell variants not taken from the sampled item")
	}

	hint := cues.last()
	if hint.key != "luobo" || !hint.opts.Force || hint.opts.Delay != 0 {
		t.Errorf("hint = %+v, want forced immediate luobo", hint)
	}
}

func TestGridChallengeSeededSamplingIsReproducible(t *testing.T) {
	template := gridTemplate()
	a := NewGridChallenge(template, newFakeCues(), game.NewRandom(42), Callbacks{}, GridOptions{})
	b := NewGridChallenge(template, newFakeCues(), game.NewRandom(42), Callbacks{}, GridOptions{})

	if !reflect.DeepEqual(a.Cells(), b.Cells()) {
		t.Error("same seed should produce the same grid")
	}
	if !reflect.DeepEqual(a.CorrectIDs(), b.CorrectIDs()) {
		t.Error("same seed should produce the same answer")
	}

	// correctIDs 恰好是名称等于正确答案的格子
	name, _ := a.CorrectItem()
	var want []int
	for _, cell := range a.Cells() {
		if cell.Name == name {
			want = append(want, cell.ID)
		}
	}
	if want == nil {
		want = []int{}
	}
	if !reflect.DeepEqual(a.CorrectIDs(), want) {
		t.Errorf("CorrectIDs = %v, want %v", a.CorrectIDs(), want)
	}
}

func TestGridChallengeSelection(t *testing.T) {
	sounds := &fakeSounds{}
	g := newGrid(GridPolicySkip, 0, luoboAt1And4, newFakeCues(), sounds, &counter{})

	// 按钮形式的格子按下时播放点击音效
	if !g.PressCell(1) {
		t.Fatal("PressCell(1) should be recorded")
	}
	if g.PressedID() != 1 {
		t.Errorf("PressedID = %d, want 1", g.PressedID())
	}
	if !reflect.DeepEqual(sounds.played, []string{clickSoundPath}) {
		t.Errorf("click sounds = %v", sounds.played)
	}
	g.ReleaseCell(1)
	if !g.IsSelected(1) || g.PressedID() != 0 {
		t.Error("release should select the cell and clear the press")
	}

	// 已选中的格子按下不做任何事
	if g.PressCell(1) {
		t.Error("pressing a selected cell should be a no-op")
	}
	if len(sounds.played) != 1 {
		t.Error("pressing a selected cell must not play the click sound")
	}
	g.ReleaseCell(1)
	if g.IsSelected(1) {
		t.Error("release on a selected cell should deselect it")
	}

	// 图片形式的格子不播放点击音效
	tap(g, 2)
	if len(sounds.played) != 1 {
		t.Error("image cells must not play the click sound")
	}
	if !reflect.DeepEqual(g.SelectedIDs(), []int{2}) {
		t.Errorf("SelectedIDs = %v, want [2]", g.SelectedIDs())
	}

	// 移出格子后松开只清除按下状态
	g.PressCell(3)
	g.CancelPress()
	if g.PressedID() != 0 || g.IsSelected(3) {
		t.Error("CancelPress should only clear the press")
	}

	if g.PressCell(42) {
		t.Error("unknown cell id should be ignored")
	}
}

// 场景 C：正确答案集合为空，空选择"跳过"即通过
func TestGridChallengeEmptyIntersection(t *testing.T) {
	cues := newFakeCues()
	c := &counter{}
	// 正确答案是包包，但格子里只有萝卜和纸巾
	g := newGrid(GridPolicySkip, 2, luoboAt1And4, cues, nil, c)

	if len(g.CorrectIDs()) != 0 {
		t.Fatalf("CorrectIDs = %v, want empty", g.CorrectIDs())
	}
	if g.VerifyLabel() != VerifyLabelSkip {
		t.Errorf("VerifyLabel = %q, want %q", g.VerifyLabel(), VerifyLabelSkip)
	}
	if !g.Verify() {
		t.Fatal("Verify should be accepted with an empty selection under skip policy")
	}
	if g.Status() != StatusVerifying {
		t.Errorf("Status = %s, want verifying", g.Status())
	}

	advance(g.Update, GridVerifyDelay.Seconds())
	if g.Status() != StatusSuccess {
		t.Fatalf("Status = %s, want success", g.Status())
	}
	if last := cues.last(); last.key != SuccessCue || !last.opts.Force {
		t.Errorf("success cue = %+v", last)
	}

	advance(g.Update, GridSuccessDisplayDelay.Seconds())
	if c.success != 1 {
		t.Errorf("OnSuccess calls = %d, want 1", c.success)
	}
}

// 场景 D：先选错，再选对
func TestGridChallengeWrongThenRight(t *testing.T) {
	cues := newFakeCues()
	c := &counter{}
	g := newGrid(GridPolicySkip, 0, luoboAt1And4, cues, nil, c)

	tap(g, 2)
	if g.VerifyLabel() != VerifyLabelVerify {
		t.Errorf("VerifyLabel = %q, want %q", g.VerifyLabel(), VerifyLabelVerify)
	}
	g.Verify()

	// 验证中不接受输入
	if g.PressCell(1) {
		t.Error("PressCell should be ignored while verifying")
	}

	hintsBefore := len(cues.calls)
	advance(g.Update, GridVerifyDelay.Seconds())
	if g.Status() != StatusPending {
		t.Fatalf("Status = %s, want pending", g.Status())
	}
	if len(g.SelectedIDs()) != 0 {
		t.Errorf("SelectedIDs = %v, want cleared", g.SelectedIDs())
	}
	if len(cues.calls) != hintsBefore+1 || cues.last().key != "luobo" || !cues.last().opts.Force {
		t.Errorf("hint not replayed after mismatch: %+v", cues.calls)
	}
	if c.failure != 0 {
		t.Error("skip policy must not report failure")
	}

	tap(g, 4)
	tap(g, 1)
	g.Verify()
	advance(g.Update, GridVerifyDelay.Seconds())
	advance(g.Update, GridSuccessDisplayDelay.Seconds())
	if g.Status() != StatusSuccess || c.success != 1 {
		t.Errorf("Status = %s success calls = %d, want success/1", g.Status(), c.success)
	}
}

func TestGridChallengeSupersetFails(t *testing.T) {
	g := newGrid(GridPolicySkip, 0, luoboAt1And4, newFakeCues(), nil, &counter{})

	tap(g, 1)
	tap(g, 4)
	tap(g, 5)
	g.Verify()
	advance(g.Update, GridVerifyDelay.Seconds())

	if g.Status() != StatusPending {
		t.Errorf("Status = %s, superset selection must not succeed", g.Status())
	}
}

func TestGridChallengeStrictPolicy(t *testing.T) {
	cues := newFakeCues()
	c := &counter{}
	g := newGrid(GridPolicyStrict, 0, luoboAt1And4, cues, nil, c)

	if g.CanVerify() || g.Verify() {
		t.Error("strict policy requires a non-empty selection")
	}
	if g.VerifyLabel() != VerifyLabelVerify {
		t.Errorf("VerifyLabel = %q, want %q", g.VerifyLabel(), VerifyLabelVerify)
	}

	tap(g, 2)
	if !g.Verify() {
		t.Fatal("Verify should be accepted with a selection")
	}
	advance(g.Update, GridVerifyDelay.Seconds())
	if g.Status() != StatusFailure {
		t.Fatalf("Status = %s, want failure", g.Status())
	}
	if len(g.SelectedIDs()) != 0 {
		t.Error("selection should be cleared on failure")
	}
	if c.failure != 0 {
		t.Error("OnFailure fired before display delay")
	}
	if g.PressCell(1) {
		t.Error("input should be ignored while showing failure")
	}

	advance(g.Update, GridFailureDisplayDelay.Seconds())
	if c.failure != 1 {
		t.Errorf("OnFailure calls = %d, want 1", c.failure)
	}
	if g.Status() != StatusPending {
		t.Errorf("Status = %s, want pending after failure display", g.Status())
	}
	if cues.last().key != "luobo" {
		t.Error("hint should be replayed after failure")
	}

	// 第二次失败不再通知宿主
	tap(g, 3)
	g.Verify()
	advance(g.Update, GridVerifyDelay.Seconds())
	advance(g.Update, GridFailureDisplayDelay.Seconds())
	if c.failure != 1 {
		t.Errorf("OnFailure calls = %d, want at most once", c.failure)
	}
}

func TestGridChallengeRefreshResamples(t *testing.T) {
	cues := newFakeCues()
	c := &counter{}
	draws := append(gridDraws(0, luoboAt1And4), gridDraws(2, [GridCellCount]int{2, 2, 2, 2, 2, 2, 2, 2, 2})...)
	g := NewGridChallenge(gridTemplate(), cues, &scriptedRandom{ints: draws}, c.callbacks(), GridOptions{})

	tap(g, 1)
	g.Verify()
	g.Refresh()

	if name, _ := g.CorrectItem(); name != "baobao" {
		t.Errorf("CorrectItem after refresh = %s, want baobao", name)
	}
	if !reflect.DeepEqual(g.CorrectIDs(), []int{1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("CorrectIDs = %v", g.CorrectIDs())
	}
	if g.Status() != StatusPending || len(g.SelectedIDs()) != 0 {
		t.Error("refresh should reset status and selection")
	}
	if cues.last().key != "baobao" || !cues.last().opts.Force {
		t.Errorf("hint after refresh = %+v", cues.last())
	}

	advance(g.Update, 2)
	if c.success != 0 || g.Status() != StatusPending {
		t.Error("refresh must cancel the pending verification")
	}
}

func TestGridChallengeUnmountAndClose(t *testing.T) {
	cues := newFakeCues()
	c := &counter{}
	g := newGrid(GridPolicySkip, 0, luoboAt1And4, cues, nil, c)

	tap(g, 1)
	tap(g, 4)
	g.Verify()
	g.Close()
	g.Close()

	if c.close != 1 {
		t.Errorf("OnClose calls = %d, want 1", c.close)
	}
	if cues.stopAlls != 1 {
		t.Errorf("StopAll calls = %d, want 1", cues.stopAlls)
	}

	advance(g.Update, 3)
	if c.success != 0 {
		t.Error("timers must not fire after unmount")
	}
	if g.CanVerify() || g.PressCell(2) {
		t.Error("input must be ignored after unmount")
	}
	if g.ReplayHint() != game.PlayNoClips {
		t.Error("ReplayHint must be a no-op after unmount")
	}
}

func TestGridChallengeNoItems(t *testing.T) {
	cues := newFakeCues()
	g := NewGridChallenge(&config.GridTemplate{PromptTemplate: "{target}"}, cues, &scriptedRandom{}, Callbacks{}, GridOptions{})

	if len(g.Cells()) != 0 {
		t.Error("no cells without items")
	}
	if len(cues.calls) != 0 {
		t.Error("no hint without items")
	}
	if g.ReplayHint() != game.PlayNoClips {
		t.Error("ReplayHint should report no clips")
	}
}

func TestSameSet(t *testing.T) {
	set := func(ids ...int) map[int]struct{} {
		m := make(map[int]struct{})
		for _, id := range ids {
			m[id] = struct{}{}
		}
		return m
	}

	tests := []struct {
		name string
		a, b map[int]struct{}
		want bool
	}{
		{"both empty", set(), set(), true},
		{"same members different order", set(4, 1), set(1, 4), true},
		{"subset", set(1), set(1, 4), false},
		{"superset", set(1, 4, 5), set(1, 4), false},
		{"same size different members", set(1, 5), set(1, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameSet(tt.a, tt.b); got != tt.want {
				t.Errorf("sameSet = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseGridPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    GridPolicy
		wantErr bool
	}{
		{"skip", GridPolicySkip, false},
		{"", GridPolicySkip, false},
		{"STRICT", GridPolicyStrict, false},
		{"lenient", GridPolicySkip, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGridPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("policy = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGridChallengeAcceptsInput(t *testing.T) {
	g := newGrid(GridPolicySkip, 0, luoboAt1And4, newFakeCues(), nil, &counter{})
	if !g.AcceptsInput() {
		t.Fatal("pending challenge should accept input")
	}

	// 已选中的格子：按下不记录，但仍接受输入
	tap(g, 1)
	if g.PressCell(1) || !g.AcceptsInput() {
		t.Error("selected cell press should be unrecorded while input stays accepted")
	}

	g.Verify()
	if g.AcceptsInput() {
		t.Error("verifying challenge should not accept input")
	}

	g.Unmount()
	if g.AcceptsInput() {
		t.Error("unmounted challenge should not accept input")
	}
}
