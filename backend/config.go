package main

import "sync"

type Config struct {
	BotMoveDelayMs int  `json:"bot_move_delay_ms"`
	TickMs         int  `json:"tick_ms"`
	SearchWorkers  int  `json:"search_workers"`
	LogSearchStats bool `json:"log_search_stats"`
	HistoryLimit   int  `json:"history_limit"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		// Pacing: bots wait this long between moves so spectators can
		// follow; 0 lets them fire as fast as the tick loop ticks.
		BotMoveDelayMs: 300,
		TickMs:         50,

		// Scored search: 1 keeps trials on the calling goroutine.
		SearchWorkers:  1,
		LogSearchStats: false,

		HistoryLimit: 512,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Update swaps the whole config in, clamping values the engine cannot run
// with back to their defaults.
func (c *ConfigStore) Update(newConfig Config) {
	if newConfig.BotMoveDelayMs < 0 {
		newConfig.BotMoveDelayMs = 0
	}
	if newConfig.TickMs < 1 {
		newConfig.TickMs = DefaultConfig().TickMs
	}
	if newConfig.SearchWorkers < 1 {
		newConfig.SearchWorkers = 1
	}
	if newConfig.HistoryLimit < 1 {
		newConfig.HistoryLimit = DefaultConfig().HistoryLimit
	}
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
