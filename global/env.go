package global

import (
	"github.com/jamwt/anon-notes-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
	Name string = "Anon Notes Service"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
