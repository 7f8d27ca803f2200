package batch

import (
	"errors"
	"regexp"
	"strconv"
)

var (
	ErrPedestrianCountMissing = errors.New("pedestrian collision count not found in simulation output")
	ErrVehicleCountMissing    = errors.New("vehicle collision count not found in simulation output")

	pedestrianCountRe = regexp.MustCompile(`pedestrian collision count:\s*(\d+)`)
	vehicleCountRe    = regexp.MustCompile(`vehicle collision count:\s*(\d+)`)
)

// ParseCollisions 从仿真输出中读取两个碰撞计数
// 参数：output-仿真程序的标准输出
// 返回：行人碰撞数、车辆碰撞数，任一缺失时返回对应的哨兵错误
func ParseCollisions(output []byte) (pedestrians, vehicles int32, err error) {
	pedestrians, err = parseCount(pedestrianCountRe, output, ErrPedestrianCountMissing)
	if err != nil {
		return 0, 0, err
	}
	vehicles, err = parseCount(vehicleCountRe, output, ErrVehicleCountMissing)
	if err != nil {
		return 0, 0, err
	}
	return pedestrians, vehicles, nil
}

func parseCount(re *regexp.Regexp, output []byte, missing error) (int32, error) {
	m := re.FindSubmatch(output)
	if m == nil {
		return 0, missing
	}
	n, err := strconv.ParseInt(string(m[1]), 10, 32)
	if err != nil {
		return 0, errors.Join(missing, err)
	}
	return int32(n), nil
}
