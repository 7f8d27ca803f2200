package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/batch"
)

var (
	// 仿真程序路径
	simPath = flag.String("sim", "", "simulation binary path (required)")
	// 传给仿真程序的参数，空格分隔
	simArgs = flag.String("sim.args", "", "extra arguments passed to every simulation run, space separated")
	n       = flag.Int("n", 50, "number of runs")
	output  = flag.String("o", "simulation_results.xlsx", "output xlsx file path (empty means disabled)")
	// MongoDB输出，设置为空则不写入
	mongoURI = flag.String("mongo", "", "mongodb uri for results (empty means disabled), e.g. mongodb://localhost:27017")
	mongoDB  = flag.String("mongo.db", "crossing", "mongodb database")
	mongoCol = flag.String("mongo.col", "results", "mongodb collection")

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

	log = logrus.WithField("module", "batch")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	if *simPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := batch.NewRunner(&batch.Command{Path: *simPath, Args: strings.Fields(*simArgs)}, *n)
	if err != nil {
		log.Fatal(err)
	}
	results, err := runner.Run(ctx)
	if err != nil {
		log.Errorf("batch interrupted: %v", err)
	}
	if len(results) == 0 {
		log.Warn("no valid results, nothing saved")
		return
	}

	var sinks []batch.Sink
	if *output != "" {
		sinks = append(sinks, &batch.XLSXSink{Path: *output})
	}
	if *mongoURI != "" {
		sinks = append(sinks, &batch.MongoSink{URI: *mongoURI, DB: *mongoDB, Col: *mongoCol})
	}
	failed := false
	for _, s := range sinks {
		if err := s.Write(context.Background(), results); err != nil {
			log.Errorf("write results: %v", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
