package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/server"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/task"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径，与config-data均为空时使用默认配置
	configPath = flag.String("config", "", "config file path (empty means built-in defaults)")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 快照推送的WebSocket监听地址，设置为空则不启动
	listen = flag.String("listen", "", "websocket snapshot stream listening address (empty means disabled), e.g. :51102")
	// 覆盖配置中的随机种子
	seed = flag.Uint64("seed", 0, "random seed (0 means use config, then current time)")
	// 覆盖配置中的实时模式
	realtime = flag.Bool("realtime", false, "advance at the configured frame rate instead of as fast as possible")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "crossing")
)

func loadConfig() (config.Config, error) {
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			return c, fmt.Errorf("config file load err: %w", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			return c, fmt.Errorf("config data load err: %w", err)
		}
	} else {
		return c, nil
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		return c, fmt.Errorf("config file load err: %w", err)
	}
	return c, nil
}

func main() {
	flag.Parse()
	// 日志输出到stderr，stdout只留给最终的计数结果
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	c, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		c.Control.Seed = *seed
	}
	if *realtime {
		c.Control.Realtime = true
	}
	log.Infof("%+v", c)

	t, err := task.NewContext(c)
	if err != nil {
		log.Fatal(err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var observe func(task.Snapshot)
	if *listen != "" {
		hub := server.NewHub()
		go hub.Run(sigCtx)
		go func() {
			if err := hub.ListenAndServe(sigCtx, *listen); err != nil {
				log.Errorf("snapshot stream stopped: %v", err)
			}
		}()
		observe = hub.Publish
	}

	if err := t.Run(sigCtx, observe); err != nil {
		// 被外部中断：不输出计数结果
		log.Errorf("simulation aborted: %v", err)
		stop()
		os.Exit(1)
	}
	log.Infof("simulation finished at step %d (%s), seed %d", t.Clock().InternalStep, t.Clock(), t.Seed())

	r := t.Report()
	fmt.Printf("pedestrian collision count: %d\n", r.PedestrianCollisions)
	fmt.Printf("vehicle collision count: %d\n", r.VehicleCollisions)
}
