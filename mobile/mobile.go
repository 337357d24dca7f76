//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.starfall -o build/android/starfall.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Starfall.xcframework -v ./mobile
package mobile

import (
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/starfall/pkg/app"
	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/embedded"
)

func init() {
	// assetsFS 和 dataFS 在 embed.go 中声明
	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		log.Fatalf("资源初始化失败: %v", err)
	}
	data, err := fs.Sub(dataFS, "data")
	if err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}
	embedded.Init(assets, data)

	gameApp, err := app.NewApp(app.Config{
		Verbose: true,
		APIURL:  config.GetEnv(config.EnvAPIURL, config.DefaultAPIURL),
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
