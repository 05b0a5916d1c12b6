package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/soyart/gsl/soyutils"

	"github.com/soyart/vesting-enricher/vestingpool"
)

// DefaultInputCsvUrl is the published Safe investor vestings table.
const DefaultInputCsvUrl = "https://raw.githubusercontent.com/safe-global/claiming-app-data/" +
	"9fbbe2b90a4ca635a0883dd5cb45493695c70c3b/vestings/assets/1/investor_vestings.csv"

const DefaultOutputCsv = "vestings_out.csv"

type Config struct {
	Label string `yaml:"label" json:"label"`

	NodeUrl  string `yaml:"node_url" json:"nodeUrl"`
	RedisUrl string `yaml:"redis_url" json:"redisUrl"` // Optional sink, empty disables

	Input  string `yaml:"input" json:"input"` // Local path or http(s) URL
	Output string `yaml:"output" json:"output"`

	PoolAddressConfig string         `yaml:"pool_address" json:"-"`
	PoolAddress       common.Address `yaml:"-" json:"poolAddress"` // Parsed from PoolAddressConfig
}

func From(filename string) (*Config, error) {
	if envFilename, found := os.LookupEnv("CONF_FILE"); found {
		filename = envFilename
	}

	conf, err := soyutils.ReadFileYAMLPointer[Config](filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", filename)
	}

	// Allow env override for NodeUrl
	if nodeUrl, found := os.LookupEnv("NODE_URL"); found {
		conf.NodeUrl = nodeUrl
	}

	if conf.NodeUrl == "" {
		return nil, errors.New("empty ethereum node url")
	}

	// Allow env override for RedisUrl
	if redisUrl, found := os.LookupEnv("REDIS_URL"); found {
		// Strip protocol string
		if strings.Contains(redisUrl, "redis://") {
			urlParts := strings.Split(redisUrl, "redis://")
			if len(urlParts) < 2 {
				return nil, fmt.Errorf("bad REDIS_URL env %s", redisUrl)
			}

			redisUrl = urlParts[1]
		}

		conf.RedisUrl = redisUrl
	}

	if input, found := os.LookupEnv("INPUT_CSV"); found {
		conf.Input = input
	}

	if conf.Input == "" {
		conf.Input = DefaultInputCsvUrl
	}

	if output, found := os.LookupEnv("OUTPUT_CSV"); found {
		conf.Output = output
	}

	if conf.Output == "" {
		conf.Output = DefaultOutputCsv
	}

	if poolAddr, found := os.LookupEnv("POOL_ADDRESS"); found {
		conf.PoolAddressConfig = poolAddr
	}

	if conf.PoolAddressConfig == "" {
		conf.PoolAddressConfig = vestingpool.DefaultAddress
	}

	if !common.IsHexAddress(conf.PoolAddressConfig) {
		return nil, fmt.Errorf("bad pool address %s", conf.PoolAddressConfig)
	}

	conf.PoolAddress = common.HexToAddress(conf.PoolAddressConfig)

	if label, found := os.LookupEnv("LABEL"); found {
		conf.Label = label
	}

	return conf, nil
}
