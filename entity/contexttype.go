package entity

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/randengine"
)

var log = logrus.WithField("module", "entity")

type ITaskContext interface {
	TrafficLight() ITrafficLight
	RuntimeConfig() *config.RuntimeConfig
	Generator() *randengine.Engine
}
