package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//Config represents options given in the environment
type Config struct {
	InventoryPath string //path to the catalog CSV; default: inventory.csv

	AIEndpoint    string   //chat completions endpoint; default: https://api.openai.com/v1/chat/completions
	AIModel       string   //default: gpt-4.1-nano
	AIKey         string   //API key; may be empty for endpoints without auth
	AITemperature *float64 //sampling temperature, 0 is a valid setting; default: 0.7

	SessionExpiration int //in minutes; default: 60
	CacheMaxBytes     int //session cache size; default: 8388608

	ListenAddr string //addr format used for net.Dial; required
	Prefix     string //url prefix to mount api to without trailing slash
}

var config = &Config{}

func checkEmpty(val, name string) {
	if val == "" {
		log.Fatalf("CLINKBOT_%s must be configured\n", name)
	}
}

func init() {
	//optional .env file for local development
	_ = godotenv.Load()

	err := envconfig.Process("CLINKBOT", config)
	if err != nil {
		log.Fatalln("Error reading configuration from environment:", err)
	}

	if config.InventoryPath == "" {
		config.InventoryPath = "inventory.csv"
	}
	if config.AIEndpoint == "" {
		config.AIEndpoint = "https://api.openai.com/v1/chat/completions"
	}
	if config.AIModel == "" {
		config.AIModel = "gpt-4.1-nano"
	}
	if config.AITemperature == nil {
		temperature := 0.7
		config.AITemperature = &temperature
	}
	if config.SessionExpiration == 0 {
		config.SessionExpiration = 60
	}
	if config.CacheMaxBytes == 0 {
		config.CacheMaxBytes = 8 * 1024 * 1024
	}

	checkEmpty(config.ListenAddr, "LISTENADDR")
}
