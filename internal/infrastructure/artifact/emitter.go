package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
)

var _ output.ArtifactEmitter = (*Emitter)(nil)

// Emitter persists an accepted configuration as a YAML agent definition and
// appends a registration record to the shared registry. The registry append
// is flock-guarded so concurrent builds never interleave writes; artifact
// files are keyed by role and identifier and an existing file is never
// replaced.
type Emitter struct {
	dir    string
	logger output.LoggerPort
}

func NewEmitter(dir string, logger output.LoggerPort) *Emitter {
	return &Emitter{dir: dir, logger: logger}
}

// definition is the on-disk artifact schema.
type definition struct {
	ID              string   `yaml:"id"`
	Role            string   `yaml:"role"`
	Capabilities    []string `yaml:"capabilities"`
	Constraints     []string `yaml:"constraints,omitempty"`
	Instruction     string   `yaml:"instruction"`
	SuccessCriteria string   `yaml:"success_criteria"`
	Model           struct {
		Name          string  `yaml:"name"`
		ContextWindow int     `yaml:"context_window"`
		Temperature   float32 `yaml:"temperature"`
	} `yaml:"model"`
	QA struct {
		AverageScore float64 `yaml:"average_score"`
		PassRate     float64 `yaml:"pass_rate"`
		Variance     float64 `yaml:"variance"`
	} `yaml:"qa"`
	CreatedAt time.Time `yaml:"created_at"`
}

type registryRecord struct {
	RegistrationID string    `yaml:"registration_id"`
	AgentID        string    `yaml:"agent_id"`
	Role           string    `yaml:"role"`
	Artifact       string    `yaml:"artifact"`
	RegisteredAt   time.Time `yaml:"registered_at"`
}

func (e *Emitter) Emit(ctx context.Context, cfg *entity.AgentConfiguration, verdict entity.Verdict) (*entity.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.yaml", sanitize(cfg.Role), cfg.ID))
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("artifact already exists at %s", path)
	}

	def := definition{
		ID:              cfg.ID,
		Role:            cfg.Role,
		Capabilities:    cfg.Capabilities,
		Constraints:     cfg.Constraints,
		Instruction:     cfg.Instruction,
		SuccessCriteria: cfg.SuccessCriteria,
		CreatedAt:       time.Now().UTC(),
	}
	def.Model.Name = cfg.Model.Name
	def.Model.ContextWindow = cfg.Model.ContextWindow
	def.Model.Temperature = cfg.Model.Temperature
	def.QA.AverageScore = verdict.AverageScore
	def.QA.PassRate = verdict.PassRate
	def.QA.Variance = verdict.Variance

	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal agent definition: %w", err)
	}
	if err := atomicWrite(path, data); err != nil {
		return nil, err
	}

	reg := &entity.Registration{
		ArtifactLocation: path,
		RegistrationID:   uuid.NewString(),
	}
	if err := e.appendRegistry(reg, cfg); err != nil {
		return nil, err
	}

	e.logger.Info("Artifact emitted", "agent_id", cfg.ID, "path", path, "registration_id", reg.RegistrationID)
	return reg, nil
}

func (e *Emitter) appendRegistry(reg *entity.Registration, cfg *entity.AgentConfiguration) error {
	lock := flock.New(filepath.Join(e.dir, "registry.lock"))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire registry lock: %w", err)
	}
	defer lock.Unlock()

	record := registryRecord{
		RegistrationID: reg.RegistrationID,
		AgentID:        cfg.ID,
		Role:           cfg.Role,
		Artifact:       reg.ArtifactLocation,
		RegisteredAt:   time.Now().UTC(),
	}
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal registry record: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(e.dir, "registry.yaml"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("---\n" + string(data)); err != nil {
		return fmt.Errorf("append registry record: %w", err)
	}
	return nil
}

// atomicWrite stages the payload in a temp file and renames it into place
// so readers never observe a partial artifact.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename artifact into place: %w", err)
	}
	return nil
}

func sanitize(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	out := strings.Trim(string(result), "_")
	if out == "" {
		return "agent"
	}
	if len(out) > 60 {
		out = out[:60]
	}
	return out
}
