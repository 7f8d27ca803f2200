package batch

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sink 结果输出
type Sink interface {
	Write(ctx context.Context, results []Result) error
}

// 表格列名
var xlsxHeader = []any{"run", "collisions_ped", "collisions_car"}

// XLSXSink 将结果写为xlsx文件，每次运行一行
type XLSXSink struct {
	Path  string
	Sheet string // 为空时使用默认工作表Sheet1
}

func (s *XLSXSink) Write(_ context.Context, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := s.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	} else if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return err
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Run, r.PedestrianCollisions, r.VehicleCollisions}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	log.Infof("results saved to %s", s.Path)
	return nil
}

// MongoSink 将结果写入MongoDB集合，每次运行一个文档
type MongoSink struct {
	URI string
	DB  string
	Col string
}

func (s *MongoSink) Write(ctx context.Context, results []Result) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(context.Background())
	docs := lo.Map(results, func(r Result, _ int) any { return r })
	res, err := client.Database(s.DB).Collection(s.Col).InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("insert into %s.%s: %w", s.DB, s.Col, err)
	}
	log.Infof("%d results saved to %s.%s", len(res.InsertedIDs), s.DB, s.Col)
	return nil
}
