package app

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/volubiks/storefront/internal/cartstore"
	"github.com/volubiks/storefront/pkg/metrics"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
		go a.SchedStoreMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc(fmt.Sprintf("@every %ds", a.appConfig.Promo.EngineSecs), func() {
		a.engine.Rebuild(a.ShopCatalog())
		a.engine.Advance()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	// keep the cart gauge current on every broadcast, same fan-out as the
	// widgets that listen to the change signal
	if err := a.bus.Subscribe(cartstore.TopicStorageChanged, func() {
		metrics.SetGauge("store_cart_size", int64(a.cart.Count()))
	}); err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge("system_cpuuse", int64(_cpuuse[0]*100)) // Store as percentage * 100
	}

	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge("system_memuse", int64(_meminfo.Used/1024/1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		metrics.SetGauge("volubiks_cpuuse", int64(cpuuse*100)) // Store as percentage * 100
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		metrics.SetGauge("volubiks_memuse", int64(meminfo.RSS/1024/1024))
	}
}

// SchedStoreMonitorTask records storefront gauges: cart size and the current
// size of each catalog snapshot.
func (a *Application) SchedStoreMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	metrics.SetGauge("store_cart_size", int64(a.cart.Count()))
	metrics.SetGauge("store_catalog_shop", int64(len(a.ShopCatalog())))
	metrics.SetGauge("store_catalog_checkout", int64(len(a.CheckoutCatalog())))
}
