package conf

import (
	"errors"
	"gopkg.in/yaml.v3"
	"io/fs"
	"os"
	"tempnet/logs"
)

type ConfigStruct struct {
	Log struct {
		File  string `yaml:"File"`
		Level string `yaml:"Level"`
	} `yaml:"Log"`
	Loader struct {
		Delimiters string `yaml:"Delimiters"` // candidates, tried in this order
		Undirected bool   `yaml:"Undirected"`
	} `yaml:"Loader"`
	Extraction struct {
		ReverseTime     bool `yaml:"ReverseTime"`
		StrictAdjacency bool `yaml:"StrictAdjacency"`
		Prune           bool `yaml:"Prune"`
	} `yaml:"Extraction"`
	Analysis struct {
		Workers int `yaml:"Workers"`
	} `yaml:"Analysis"`
	Ensemble struct {
		Precision   int    `yaml:"Precision"`
		Seed        uint64 `yaml:"Seed"`
		MaxAttempts int    `yaml:"MaxAttempts"`
	} `yaml:"Ensemble"`
	Graphviz struct {
		OutputDir string `yaml:"OutputDir"`
		Render    bool   `yaml:"Render"`
	} `yaml:"Graphviz"`
}

const (
	DefaultConfigPath  = "conf/config.yaml"
	DefaultDelimiters  = " \t;,"
	DefaultPrecision   = 1000
	DefaultMaxAttempts = 100000
	DefaultOutputDir   = "graphs/"
)

var Config = Default()

// Default returns the configuration used for keys missing from the yaml file
func Default() ConfigStruct {
	var c ConfigStruct
	c.Log.Level = "info"
	c.Loader.Delimiters = DefaultDelimiters
	c.Extraction.Prune = true
	c.Ensemble.Precision = DefaultPrecision
	c.Ensemble.Seed = 1
	c.Ensemble.MaxAttempts = DefaultMaxAttempts
	c.Graphviz.OutputDir = DefaultOutputDir
	return c
}

// Load reads path on top of Default
func Load(path string) (ConfigStruct, error) {
	c := Default()
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, err
	}
	return c, nil
}

// Init loads path into Config. A missing file keeps the defaults.
func Init(path string) {
	c, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logs.Logger.Warnf("config file %s not found, using defaults", path)
			Config = Default()
			return
		}
		logs.Logger.WithError(err).Fatal("unmarshal config file failed")
	}
	Config = c
	logs.Logger.Debugf("loaded config %s", path)
}
