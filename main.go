package main

import (
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/gonewx/starfall/pkg/app"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	difficulty := flag.String("difficulty", "", "默认难度: easy, normal, hard")
	apiURL := flag.String("api", config.GetEnv(config.EnvAPIURL, config.DefaultAPIURL), "排行榜服务地址")
	assetsDir := flag.String("assets", config.GetEnv(config.EnvAssetsDir, config.DefaultAssetsDir), "图片和音效目录")
	route := flag.String("route", "", "启动路由（如 play/hard, ranking, alias/Neo）")
	flag.Parse()

	data, err := fs.Sub(dataFS, "data")
	if err != nil {
		log.Fatalf("无法读取嵌入的配置: %v", err)
	}
	embedded.Init(openAssets(*assetsDir), data)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Difficulty: *difficulty,
		APIURL:     *apiURL,
		StartRoute: *route,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

// openAssets 返回资源目录的文件系统，目录不存在时返回 nil（使用降级渲染）
func openAssets(dir string) fs.FS {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Printf("[main] 资源目录 %q 不可用，使用纯色渲染", dir)
		return nil
	}
	return os.DirFS(dir)
}
