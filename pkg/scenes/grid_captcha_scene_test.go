package scenes

import (
	"testing"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// newGridScene 全部格子都是 luobo 的按钮形式（zeroRandom）
func newGridScene(t *testing.T, policy captcha.GridPolicy) (*GridCaptchaScene, *captcha.Host) {
	t.Helper()
	host, _ := newTestHost(t, captcha.HostOptions{GridPolicy: policy})
	if !host.Present(captcha.ModeGrid) {
		t.Fatal("Present failed")
	}
	s := NewGridCaptchaScene(host, newTestAssets(), nil)
	s.OnEnter()
	return s, host
}

func cellCenter(s *GridCaptchaScene, id int) (float64, float64) {
	r := s.CellRect(id)
	return r.X + r.Width/2, r.Y + r.Height/2
}

func TestGridSceneCellAt(t *testing.T) {
	s, _ := newGridScene(t, captcha.GridPolicySkip)

	for id := 1; id <= captcha.GridCellCount; id++ {
		x, y := cellCenter(s, id)
		if got := s.CellAt(x, y); got != id {
			t.Errorf("CellAt(center of %d) = %d", id, got)
		}
	}

	// 间隙和弹窗外
	gapX := s.CellRect(1).X + s.CellRect(1).Width + 1
	_, y := cellCenter(s, 1)
	if got := s.CellAt(gapX, y); got != 0 {
		t.Errorf("CellAt(gap) = %d, want 0", got)
	}
	if got := s.CellAt(0, 0); got != 0 {
		t.Errorf("CellAt(0,0) = %d, want 0", got)
	}
}

func TestGridSceneToggleSelection(t *testing.T) {
	s, host := newGridScene(t, captcha.GridPolicySkip)
	g := host.Grid()
	x, y := cellCenter(s, 5)

	s.HandlePointer(utils.PointerPressed, x, y)
	if g.PressedID() != 5 {
		t.Fatalf("PressedID = %d, want 5", g.PressedID())
	}
	s.HandlePointer(utils.PointerReleased, x, y)
	if !g.IsSelected(5) {
		t.Fatal("cell 5 should be selected")
	}
	if s.VerifyButton().Label != captcha.VerifyLabelVerify {
		t.Errorf("verify label = %s, want %s", s.VerifyButton().Label, captcha.VerifyLabelVerify)
	}

	tap(s, x, y)
	if g.IsSelected(5) {
		t.Error("second tap should deselect cell 5")
	}
	if s.VerifyButton().Label != captcha.VerifyLabelSkip {
		t.Errorf("verify label = %s, want %s", s.VerifyButton().Label, captcha.VerifyLabelSkip)
	}
}

func TestGridSceneStrictDeselectDisablesVerify(t *testing.T) {
	s, host := newGridScene(t, captcha.GridPolicyStrict)
	g := host.Grid()
	x, y := cellCenter(s, 3)

	tap(s, x, y)
	if !g.IsSelected(3) || !s.VerifyButton().Enabled {
		t.Fatalf("after select: selected=%v verify enabled=%v", g.IsSelected(3), s.VerifyButton().Enabled)
	}

	tap(s, x, y)
	if g.IsSelected(3) {
		t.Error("second tap should deselect cell 3")
	}
	if g.PressedID() != 0 {
		t.Errorf("PressedID = %d, want 0", g.PressedID())
	}
	if s.VerifyButton().Enabled {
		t.Error("verify should be disabled again with an empty selection")
	}

	tapButton(s, s.VerifyButton())
	if g.Status() != captcha.StatusPending {
		t.Errorf("status = %s, want pending", g.Status())
	}
}

func TestGridSceneReleaseOnOtherCellCancels(t *testing.T) {
	s, host := newGridScene(t, captcha.GridPolicySkip)
	g := host.Grid()

	x1, y1 := cellCenter(s, 1)
	x2, y2 := cellCenter(s, 2)
	s.HandlePointer(utils.PointerPressed, x1, y1)
	s.HandlePointer(utils.PointerReleased, x2, y2)

	if g.IsSelected(1) || g.IsSelected(2) {
		t.Errorf("selected = %v, want none", g.SelectedIDs())
	}
	if g.PressedID() != 0 {
		t.Errorf("PressedID = %d, want 0", g.PressedID())
	}
}

func TestGridSceneVerifyButton(t *testing.T) {
	tests := []struct {
		name        string
		policy      captcha.GridPolicy
		wantEnabled bool
		wantLabel   string
	}{
		{"skip 空选择可以跳过", captcha.GridPolicySkip, true, captcha.VerifyLabelSkip},
		{"strict 空选择禁用", captcha.GridPolicyStrict, false, captcha.VerifyLabelVerify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, host := newGridScene(t, tt.policy)
			s.HandlePointer(utils.PointerNone, 0, 0)

			b := s.VerifyButton()
			if b.Enabled != tt.wantEnabled || b.Label != tt.wantLabel {
				t.Errorf("verify = (%v, %s), want (%v, %s)", b.Enabled, b.Label, tt.wantEnabled, tt.wantLabel)
			}

			tapButton(s, b)
			verifying := host.Grid().Status() == captcha.StatusVerifying
			if verifying != tt.wantEnabled {
				t.Errorf("verifying = %v, want %v", verifying, tt.wantEnabled)
			}
		})
	}
}

func TestGridSceneSolveAll(t *testing.T) {
	s, host := newGridScene(t, captcha.GridPolicyStrict)
	g := host.Grid()

	for id := 1; id <= captcha.GridCellCount; id++ {
		x, y := cellCenter(s, id)
		tap(s, x, y)
	}
	tapButton(s, s.VerifyButton())
	if g.Status() != captcha.StatusVerifying {
		t.Fatalf("Status = %s, want verifying", g.Status())
	}

	for i := 0; i < int(captcha.GridVerifyDelay.Seconds()*60)+2; i++ {
		host.Update(1.0 / 60.0)
	}
	if g.Status() != captcha.StatusSuccess {
		t.Errorf("Status = %s, want success", g.Status())
	}
}

func TestGridSceneRefreshAndClose(t *testing.T) {
	s, host := newGridScene(t, captcha.GridPolicySkip)
	x, y := cellCenter(s, 3)
	tap(s, x, y)

	tapButton(s, s.refreshButton)
	if len(host.Grid().SelectedIDs()) != 0 {
		t.Error("refresh should clear selection")
	}

	tapButton(s, s.closeButton)
	if host.Active() != captcha.ModeNone {
		t.Errorf("Active = %s, want none", host.Active())
	}
}
