package scenes

import (
	"image"

	"github.com/decker502/aurafx/pkg/game"
	"github.com/decker502/aurafx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// NavItem 导航栏条目
type NavItem struct {
	Label string
	Route string
}

// DefaultNavItems 导航栏默认条目（顺序即快捷键 1-4）
var DefaultNavItems = []NavItem{
	{Label: "Home", Route: game.RouteHome},
	{Label: "Detect", Route: game.RouteDetect},
	{Label: "Real Time Detect", Route: game.RouteRealtime},
	{Label: "History", Route: game.RouteHistory},
}

const (
	NavBarHeight   = 48
	navItemPadding = 16
	navTextScale   = 1.5

	// 下划线高亮动画速度（每秒）
	navHighlightRate = 6.0
)

// NavBar 顶部导航栏
//
// 条目右对齐排列，当前路由带下划线高亮。
type NavBar struct {
	items     []NavItem
	rects     []image.Rectangle
	highlight []float64 // 每个条目的高亮进度 [0, 1]
	current   string
	width     int
}

// NewNavBar 创建导航栏
func NewNavBar(items []NavItem) *NavBar {
	return &NavBar{
		items:     append([]NavItem(nil), items...),
		highlight: make([]float64, len(items)),
	}
}

// Layout 按屏幕宽度计算条目点击区域
func (nb *NavBar) Layout(width int) {
	if width == nb.width && nb.rects != nil {
		return
	}
	nb.width = width
	nb.rects = make([]image.Rectangle, len(nb.items))

	x := width - navItemPadding
	for i := len(nb.items) - 1; i >= 0; i-- {
		w := int(utils.MeasureTextWidth(nb.items[i].Label, uiFace)*navTextScale) + 2*navItemPadding
		nb.rects[i] = image.Rect(x-w, 0, x, NavBarHeight)
		x -= w
	}
}

// HitTest 返回 (x, y) 处条目的路由
func (nb *NavBar) HitTest(x, y int) (string, bool) {
	i := utils.HitIndex(nb.rects, image.Pt(x, y))
	if i < 0 {
		return "", false
	}
	return nb.items[i].Route, true
}

// SetCurrent 设置当前路由
func (nb *NavBar) SetCurrent(route string) {
	nb.current = route
}

// Current 返回当前路由
func (nb *NavBar) Current() string {
	return nb.current
}

// Update 推进高亮动画
func (nb *NavBar) Update(deltaTime float64) {
	for i, item := range nb.items {
		target := 0.0
		if item.Route == nb.current {
			target = 1
		}
		nb.highlight[i] = utils.Approach(nb.highlight[i], target, navHighlightRate, deltaTime)
	}
}

// Draw 绘制导航栏
func (nb *NavBar) Draw(screen *ebiten.Image) {
	nb.Layout(screen.Bounds().Dx())

	vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), NavBarHeight, backgroundBottom, false)
	utils.DrawText(screen, "SAFETY DETECTION", uiFace, navItemPadding, (NavBarHeight-lineHeight*navTextScale)/2, navTextScale, colorTitle)

	for i, item := range nb.items {
		r := nb.rects[i]
		clr := colorMuted
		if item.Route == nb.current {
			clr = colorTitle
		}
		utils.DrawText(screen, item.Label, uiFace,
			float64(r.Min.X+navItemPadding), (NavBarHeight-lineHeight*navTextScale)/2, navTextScale, clr)

		if p := utils.EaseOutCubic(nb.highlight[i]); p > 0 {
			lineW := float64(r.Dx()-2*navItemPadding) * p
			cx := float64(r.Min.X+r.Max.X) / 2
			vector.DrawFilledRect(screen, float32(cx-lineW/2), NavBarHeight-6, float32(lineW), 2, colorAccent, false)
		}
	}
}
