//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前需先复制 data/ 到本目录。
package mobile

import "embed"

//go:embed data/game.yaml data/units.yaml data/levels
var dataFS embed.FS
