// Package levels 提供演示关卡
//
// 关卡有两种来源：data/ 下内嵌的 YAML 描述（由 FromConfig 转换），
// 以及需要脚本逻辑、直接用代码编写的构建函数。
// 关卡序号从 1 开始。
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/score"
	"github.com/decker502/lol/pkg/stage"
)

var logger = diag.For("Levels")

//go:embed data/*.yaml
var dataFS embed.FS

// Level 一个可游玩的关卡
type Level struct {
	Name        string
	Description string
	Build       stage.BuildFunc
}

// registry 按序号排列；在包初始化时组装一次
var registry = build()

func build() []Level {
	out, err := loadDir(dataFS, "data")
	if err != nil {
		logger.Urgent("built-in levels failed to load", "err", err)
	}
	return append(out, Level{
		Name:        "Siege",
		Description: "Tap to throw stones and defeat every patrol",
		Build:       siege,
	})
}

// loadDir 按文件名顺序加载目录中的全部 YAML 关卡
func loadDir(fsys fs.FS, dir string) ([]Level, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list levels in %s: %w", dir, err)
	}
	sort.Strings(names)

	var out []Level
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return out, fmt.Errorf("failed to read level %s: %w", name, err)
		}
		lc, err := config.ParseLevelConfig(data)
		if err != nil {
			return out, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, Level{Name: lc.Name, Description: lc.Description, Build: FromConfig(lc)})
	}
	return out, nil
}

// LoadFile 从文件加载单个 YAML 关卡（play --file）
func LoadFile(file string) (Level, error) {
	lc, err := config.LoadLevelConfig(file)
	if err != nil {
		return Level{}, err
	}
	return Level{Name: lc.Name, Description: lc.Description, Build: FromConfig(lc)}, nil
}

// All 全部关卡
func All() []Level { return registry }

// Count 关卡数量
func Count() int { return len(registry) }

// Get 按序号（从 1 开始）取关卡
func Get(n int) (Level, bool) {
	if n < 1 || n > len(registry) {
		return Level{}, false
	}
	return registry[n-1], true
}

// statusLine HUD 状态行：胜利进度与倒计时
func statusLine(sc *score.Score) string {
	var b strings.Builder
	switch sc.VictoryType() {
	case score.VictoryByGoodies:
		fmt.Fprintf(&b, "Goodies %d", sc.Goodies(0))
	case score.VictoryByEnemies:
		fmt.Fprintf(&b, "Defeated %d/%d", sc.EnemiesDefeated(), sc.EnemiesCreated())
	default:
		fmt.Fprintf(&b, "Arrived %d", sc.DestinationArrivals())
	}
	if c := sc.LoseCountdown(); c != score.Disabled {
		fmt.Fprintf(&b, "  Time %.0f", c)
	}
	if c := sc.WinCountdown(); c != score.Disabled {
		fmt.Fprintf(&b, "  Survive %.0f", c)
	}
	return b.String()
}
