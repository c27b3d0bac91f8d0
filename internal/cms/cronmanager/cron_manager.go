// Пакет для управления cron-задачами сервиса: очистка устаревших черновиков и другие
// периодические задачи регистрируются по имени в JobRegistry.
package cronmanager

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/robfig/cron/v3"
)

type CronJobFunc func()

type Job struct {
	Func     CronJobFunc
	Schedule string
}

type JobRegistry map[string]Job

type CronManager struct {
	dispatcher  *cron.Cron
	jobs        map[string]cron.EntryID
	mu          sync.Mutex
	jobRegistry JobRegistry
}

// NewCronManager создает менеджер задач из реестра. Паника внутри задачи не останавливает диспетчер.
func NewCronManager(jobRegistry JobRegistry) *CronManager {
	dispatcher := cron.New(
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)
	if jobRegistry == nil {
		jobRegistry = JobRegistry{}
	}

	return &CronManager{
		dispatcher:  dispatcher,
		jobs:        make(map[string]cron.EntryID),
		jobRegistry: jobRegistry,
	}
}

// Register добавляет задачу в реестр. Расписание применяется при следующем LoadJobs.
func (cm *CronManager) Register(name string, job Job) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.jobRegistry[name] = job
}

// LoadJobs заново ставит в расписание все задачи реестра. Задачи с ошибкой в расписании
// пропускаются, их имена возвращаются в ошибке.
func (cm *CronManager) LoadJobs() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for name, entryID := range cm.jobs {
		cm.dispatcher.Remove(entryID)
		delete(cm.jobs, name)
	}

	var failed []string
	for name := range cm.jobRegistry {
		if err := cm.addJob(name); err != nil {
			slog.Error("Error adding job", "name", name, "err", err)
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		slices.Sort(failed)
		return fmt.Errorf("failed to schedule jobs: %v", failed)
	}
	return nil
}

func (cm *CronManager) addJob(name string) error {
	job, exists := cm.jobRegistry[name]
	if !exists {
		return fmt.Errorf("no job function registered for name: %s", name)
	}

	id, err := cm.dispatcher.AddFunc(job.Schedule, job.Func)
	if err != nil {
		return fmt.Errorf("failed to add job '%s': %w", name, err)
	}
	cm.jobs[name] = id
	return nil
}

// Scheduled возвращает имена задач, стоящих в расписании.
func (cm *CronManager) Scheduled() []string {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	names := make([]string, 0, len(cm.jobs))
	for name := range cm.jobs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (cm *CronManager) RemoveJob(name string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if entryID, exists := cm.jobs[name]; exists {
		cm.dispatcher.Remove(entryID)
		delete(cm.jobs, name)
	}
}

func (cm *CronManager) Start() {
	cm.dispatcher.Start()
}

// Stop останавливает диспетчер и ждет завершения выполняющихся задач.
func (cm *CronManager) Stop() {
	ctx := cm.dispatcher.Stop()
	<-ctx.Done()
}
