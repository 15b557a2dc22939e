package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/config"
	"github.com/decker502/aurafx/pkg/store"
	"github.com/decker502/aurafx/pkg/systems"
)

// Canvas is a Surface that follows the viewport size.
type Canvas interface {
	systems.Surface

	// Resize changes the surface size, keeping its content where possible.
	Resize(w, h int) error
}

// disposer 可选：Unmount 时释放画布资源
type disposer interface {
	Dispose()
}

// CanvasFactory acquires a Canvas of the given size.
// It returns systems.ErrSurfaceUnavailable when no surface can be created.
type CanvasFactory func(w, h int) (Canvas, error)

// ControllerState 粒子动画生命周期状态
type ControllerState int

const (
	StateIdle      ControllerState = iota // 无粒子、未调度
	StateSpawning                         // 激活，正在补充粒子
	StateSteady                           // 激活，数量已达目标
	StateFadingOut                        // 未激活，粒子淡出中
)

func (s ControllerState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSpawning:
		return "Spawning"
	case StateSteady:
		return "Steady"
	case StateFadingOut:
		return "FadingOut"
	default:
		return fmt.Sprintf("ControllerState(%d)", int(s))
	}
}

// ControllerOptions configures a LifecycleController.
type ControllerOptions struct {
	Config    *config.ParticleConfig // nil 使用默认配置
	Source    particle.Source        // nil 使用时间种子
	Scheduler Scheduler
	Signals   SignalSource
	Viewport  Viewport
	NewCanvas CanvasFactory

	// OnStateChange 状态变化回调（可选）
	OnStateChange func(from, to ControllerState)
}

// LifecycleController owns one particle overlay: its store, its canvas and
// its frame loop.
//
// 每个 tick（Step）：
//  1. 读取当前信号
//  2. 激活时补足目标数量
//  3. 物理更新
//  4. 渲染
//  5. 仍有粒子/拖尾或仍激活时请求下一帧，否则进入 Idle 并停止调度
//
// 获取绘制表面失败时控制器在其生命周期内保持禁用，不重试。
type LifecycleController struct {
	cfg       *config.ParticleConfig
	scheduler Scheduler
	signals   SignalSource
	viewport  Viewport
	newCanvas CanvasFactory

	store    *store.ParticleStore
	physics  *systems.PhysicsSystem
	renderer *systems.RenderSystem
	canvas   Canvas

	state         ControllerState
	onStateChange func(from, to ControllerState)

	mounted      bool
	disabled     bool
	scheduled    bool
	frameID      FrameID
	removeResize func()
}

// NewLifecycleController creates an unmounted controller.
func NewLifecycleController(opts ControllerOptions) (*LifecycleController, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("lifecycle controller: scheduler is required")
	}
	if opts.Signals == nil {
		return nil, errors.New("lifecycle controller: signal source is required")
	}
	if opts.Viewport == nil {
		return nil, errors.New("lifecycle controller: viewport is required")
	}
	if opts.NewCanvas == nil {
		return nil, errors.New("lifecycle controller: canvas factory is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultParticleConfig()
	} else if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lifecycle controller: %w", err)
	}

	src := opts.Source
	if src == nil {
		src = particle.NewSource(time.Now().UnixNano())
	}

	return &LifecycleController{
		cfg:           cfg,
		scheduler:     opts.Scheduler,
		signals:       opts.Signals,
		viewport:      opts.Viewport,
		newCanvas:     opts.NewCanvas,
		store:         store.NewParticleStore(cfg, src),
		physics:       systems.NewPhysicsSystem(cfg, src),
		renderer:      systems.NewRenderSystem(cfg),
		onStateChange: opts.OnStateChange,
	}, nil
}

// Mount acquires the canvas, subscribes to resizes and starts the loop if
// the signal is already active.
//
// A canvas failure is logged and disables the controller; Mount never
// returns it.
func (c *LifecycleController) Mount() {
	if c.mounted || c.disabled {
		return
	}
	c.mounted = true
	c.removeResize = c.viewport.AddResizeListener(c.handleResize)

	w, h := c.viewport.Size()
	canvas, err := c.newCanvas(w, h)
	if err != nil {
		c.disable(err)
		return
	}
	c.canvas = canvas
	log.Printf("[LifecycleController] mounted, canvas %dx%d", w, h)

	c.Wake()
}

// Unmount cancels the pending frame, removes the resize listener, releases
// the canvas and drops all particles. Safe to call repeatedly.
func (c *LifecycleController) Unmount() {
	if c.scheduled {
		c.scheduler.CancelFrame(c.frameID)
		c.scheduled = false
	}
	if c.removeResize != nil {
		c.removeResize()
		c.removeResize = nil
	}
	if d, ok := c.canvas.(disposer); ok {
		d.Dispose()
	}
	c.canvas = nil
	if !c.mounted {
		return
	}
	c.mounted = false
	c.store.Clear()
	c.setState(StateIdle)
	log.Printf("[LifecycleController] unmounted")
}

// Wake starts the frame loop after a signal change. It is a no-op while a
// frame is already pending, since the next Step reads the new signal.
func (c *LifecycleController) Wake() {
	if !c.mounted || c.disabled || c.scheduled {
		return
	}
	sig := c.signals.Signal()
	switch {
	case sig.Active:
		c.setState(StateSpawning)
	case !c.store.Empty():
		c.setState(StateFadingOut)
	default:
		return
	}
	c.schedule()
}

// Step runs one tick. It is the callback handed to the Scheduler.
func (c *LifecycleController) Step() {
	c.scheduled = false
	if !c.mounted || c.disabled {
		return
	}

	sig := c.signals.Signal().Normalized()
	w, h := c.canvas.Size()
	bounds := particle.Bounds{Width: float64(w), Height: float64(h)}

	if sig.Active {
		target := c.cfg.TargetPopulation(sig.Intensity)
		if c.store.Len() < target {
			c.setState(StateSpawning)
			c.store.EnsurePopulation(target, bounds, sig.Intensity)
		}
	}

	c.physics.Update(c.store, sig, bounds)
	c.renderer.Draw(c.canvas, c.store)

	switch {
	case sig.Active:
		c.setState(StateSteady)
	case !c.store.Empty():
		c.setState(StateFadingOut)
	default:
		c.setState(StateIdle)
		return
	}
	c.schedule()
}

func (c *LifecycleController) schedule() {
	c.frameID = c.scheduler.RequestFrame(c.Step)
	c.scheduled = true
}

func (c *LifecycleController) handleResize(w, h int) {
	if c.canvas == nil || c.disabled {
		return
	}
	if err := c.canvas.Resize(w, h); err != nil {
		c.disable(err)
	}
}

// disable turns the controller off for good and releases everything Mount
// acquired.
func (c *LifecycleController) disable(err error) {
	log.Printf("[LifecycleController] animation disabled: %v", err)
	c.Unmount()
	c.disabled = true
}

func (c *LifecycleController) setState(s ControllerState) {
	if s == c.state {
		return
	}
	from := c.state
	c.state = s
	log.Printf("[LifecycleController] %s -> %s (particles=%d, trails=%d)",
		from, s, c.store.Len(), c.store.TrailLen())
	if c.onStateChange != nil {
		c.onStateChange(from, s)
	}
}

// State returns the current lifecycle state.
func (c *LifecycleController) State() ControllerState {
	return c.state
}

// Disabled reports whether the canvas could not be acquired.
func (c *LifecycleController) Disabled() bool {
	return c.disabled
}

// Mounted reports whether the controller is mounted.
func (c *LifecycleController) Mounted() bool {
	return c.mounted
}

// Scheduled reports whether a frame is pending.
func (c *LifecycleController) Scheduled() bool {
	return c.scheduled
}

// Store exposes the particle store (read-only use).
func (c *LifecycleController) Store() *store.ParticleStore {
	return c.store
}

// Canvas returns the acquired canvas, or nil while unmounted or disabled.
func (c *LifecycleController) Canvas() Canvas {
	return c.canvas
}
