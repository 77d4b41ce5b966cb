package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"teamtasks/common"
	"teamtasks/controller"
	"teamtasks/logger"
	"teamtasks/middleware"
	"teamtasks/router"
)

var confFile string

func initArgs() {
	// go run main.go -config config.yaml
	flag.StringVar(&confFile, "config", "config.yaml", "path to the yaml config file")
	flag.Parse()
}

func initEnv() {
	runtime.GOMAXPROCS(runtime.NumCPU())
}

func main() {
	var (
		err      error
		cfg      *common.Config
		db       *gorm.DB
		sessions common.SessionStore
		eng      *gin.Engine
	)

	initArgs()
	initEnv()

	if cfg, err = common.InitConfig(confFile); err != nil {
		goto ERR
	}

	if err = logger.Init(); err != nil {
		goto ERR
	}
	defer logger.Sync()

	if db, err = common.InitDB(cfg); err != nil {
		goto ERR
	}

	if sessions, err = common.NewSessionStore(cfg); err != nil {
		goto ERR
	}

	eng = gin.Default()
	eng = router.Register(eng, controller.New(cfg, db, sessions), middleware.Auth(cfg, db, sessions))

	logger.Infof("listening on %s", cfg.Http.Addr)
	if err = eng.Run(cfg.Http.Addr); err != nil {
		goto ERR
	}
	return

ERR:
	fmt.Println(err)
}
