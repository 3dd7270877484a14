package console

import (
	"context"
	"time"

	"github.com/parthchandak02/auto-swiper/pkg/auto"
	"github.com/parthchandak02/auto-swiper/pkg/session"
)

// Demo 用示例数据渲染全部界面元素，不产生任何输入事件
func (c *Console) Demo(ctx context.Context, version string, wait time.Duration) error {
	c.println("\n" + c.yellow.Sprint("🎭 Demo Mode"))
	c.println(c.dim.Sprint("Showcasing the terminal output without automation...") + "\n")

	c.Banner(version, time.Now())

	c.println(c.cyan.Sprint("Demo: Wait with progress bar"))
	if err := c.Wait(ctx, wait); err != nil {
		return err
	}

	c.println(c.cyan.Sprint("Demo: Status messages"))
	c.Like(1)
	c.Clicked("heart", "Images/1_HEART.png", auto.Point{X: 412, Y: 733})
	c.Skipped("comment", "Images/missing.png")
	c.Scrolled(-300)

	c.Message("Why don't scientists trust atoms? Because they make up everything!")
	c.Separator()

	c.Stats("📊 Demo Statistics", session.NewSnapshot(10, 25, 5))

	start := time.Now().Add(-12 * time.Minute)
	c.Summary(session.Report{
		Start: start,
		End:   time.Now(),
		Loops: 10,
		Stats: session.NewSnapshot(10, 25, 5),
	})
	return nil
}
