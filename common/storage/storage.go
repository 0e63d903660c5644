package storage

import (
	log "github.com/go-admin-team/go-admin-core/logger"
	"github.com/go-admin-team/go-admin-core/sdk"
	"github.com/go-admin-team/go-admin-core/sdk/config"
)

// Setup wires the cache, queue and locker adapters declared in settings.yml
// into the sdk runtime. Passed as a callback to config.Setup.
func Setup() {
	cacheAdapter, err := config.CacheConfig.Setup()
	if err != nil {
		log.Fatalf("cache setup error, %s", err.Error())
	}
	sdk.Runtime.SetCacheAdapter(cacheAdapter)

	if !config.QueueConfig.Empty() {
		queueAdapter, err := config.QueueConfig.Setup()
		if err != nil {
			log.Fatalf("queue setup error, %s", err.Error())
		}
		sdk.Runtime.SetQueueAdapter(queueAdapter)
		go queueAdapter.Run()
	}

	if !config.LockerConfig.Empty() {
		lockerAdapter, err := config.LockerConfig.Setup()
		if err != nil {
			log.Fatalf("locker setup error, %s", err.Error())
		}
		sdk.Runtime.SetLockerAdapter(lockerAdapter)
	}
}
