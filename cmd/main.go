package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/soyart/vesting-enricher/config"
	"github.com/soyart/vesting-enricher/csvio"
	"github.com/soyart/vesting-enricher/rdb"
	"github.com/soyart/vesting-enricher/vesting"
	"github.com/soyart/vesting-enricher/vestingpool"
)

func panicf(fmtString string, vars ...interface{}) {
	panic(fmt.Sprintf(fmtString, vars...))
}

func main() {
	configFile := "./config/config.yaml"

	conf, err := config.From(configFile)
	if err != nil {
		panicf("failed to read config %s: %s", configFile, err.Error())
	}

	logger, err := zap.NewProduction(zap.Fields(zap.String("serviceLabel", conf.Label)))
	if err != nil {
		panicf("failed to init logger: %s", err.Error())
	}

	confJson, err := json.Marshal(conf)
	if err != nil {
		panicf("failed to json marshal conf: %s", err.Error())
	}

	logger.Info("config", zap.String("values", string(confJson)))

	ctx := context.Background()
	client, err := ethclient.DialContext(ctx, conf.NodeUrl)
	if err != nil {
		panicf("failed to dial http node %s: %s", conf.NodeUrl, err.Error())
	}

	logger.Info("created new ethclient", zap.String("url", conf.NodeUrl))

	pool, err := vestingpool.New(client, conf.PoolAddress)
	if err != nil {
		panicf("failed to create vesting pool client %s: %s", conf.PoolAddress.Hex(), err.Error())
	}

	logger.Info("created vesting pool client", zap.String("address", conf.PoolAddress.Hex()))

	rows, err := csvio.Load(ctx, conf.Input)
	if err != nil {
		panicf("failed to load input csv %s: %s", conf.Input, err.Error())
	}

	logger.Info("loaded input csv", zap.String("input", conf.Input), zap.Int("rows", len(rows)))

	table := vesting.Run(ctx, logger, rows, pool)

	if err := csvio.WriteFile(conf.Output, table); err != nil {
		panicf("failed to write output csv %s: %s", conf.Output, err.Error())
	}

	logger.Info("wrote output csv", zap.String("output", conf.Output), zap.Int("rows", len(table.Rows)))

	if conf.RedisUrl != "" {
		rdw, err := rdb.New(conf.RedisUrl, conf.Label)
		if err != nil {
			panicf("failed to create new redis wrapper client on %s: %s", conf.RedisUrl, err.Error())
		}

		if err := rdw.SaveRows(ctx, table.Rows); err != nil {
			panicf("failed to save rows to redis: %s", err.Error())
		}

		if err := rdw.SetFailedCount(ctx, table.Failed()); err != nil {
			panicf("failed to save failed count to redis: %s", err.Error())
		}

		logger.Info("saved rows to redis", zap.String("url", conf.RedisUrl), zap.Int("rows", len(table.Rows)))
	}

	if failed := table.Failed(); failed > 0 {
		logger.Warn("some rows had errors, see 'error' column", zap.Int("failed", failed))
	}
}
