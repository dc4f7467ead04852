package service

import (
	"sort"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
)

var _ output.TaskRegistry = (*TaskRegistryImpl)(nil)

type TaskRegistryImpl struct {
	tasks map[entity.Intent]output.TaskHandler
	order []entity.Intent
}

func NewTaskRegistry() *TaskRegistryImpl {
	return &TaskRegistryImpl{
		tasks: make(map[entity.Intent]output.TaskHandler),
	}
}

// Register adds handler under its intent, replacing any earlier handler for it.
func (r *TaskRegistryImpl) Register(handler output.TaskHandler) {
	intent := handler.Intent()
	if _, exists := r.tasks[intent]; !exists {
		r.order = append(r.order, intent)
	}
	r.tasks[intent] = handler
}

func (r *TaskRegistryImpl) Get(intent entity.Intent) (output.TaskHandler, bool) {
	handler, ok := r.tasks[intent]
	return handler, ok
}

// All returns the handlers in registration order.
func (r *TaskRegistryImpl) All() []output.TaskHandler {
	result := make([]output.TaskHandler, 0, len(r.order))
	for _, intent := range r.order {
		result = append(result, r.tasks[intent])
	}
	return result
}

// Resumables returns the handlers that can own a pending entity, in registration order.
func (r *TaskRegistryImpl) Resumables() []output.Resumable {
	var result []output.Resumable
	for _, handler := range r.All() {
		if res, ok := handler.(output.Resumable); ok {
			result = append(result, res)
		}
	}
	return result
}

// Intents returns the registered intents sorted by name.
func (r *TaskRegistryImpl) Intents() []entity.Intent {
	result := make([]entity.Intent, len(r.order))
	copy(result, r.order)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
