package appointment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var timeLabelRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// CanonicalTime valida o formato H:MM/HH:MM e devolve a forma usada no
// catálogo ("08:00" → "8:00"), para que o mesmo horário não vire dois slots.
func CanonicalTime(label string) (string, error) {
	m := timeLabelRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return "", httperr.Validation("invalid_time", "Formato de horário inválido.")
	}
	h, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%d:%s", h, m[2]), nil
}

func minutesOf(label string) (int, error) {
	canon, err := CanonicalTime(label)
	if err != nil {
		return 0, err
	}
	parts := strings.SplitN(canon, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// ===============================
// Slot Catalog
// ===============================

// SlotCatalog é a lista fixa de horários do dia, em ordem.
type SlotCatalog struct {
	labels []string
	index  map[string]struct{}
}

func NewSlotCatalog(labels []string) (*SlotCatalog, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("slot catalog is empty")
	}

	sc := &SlotCatalog{index: make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		canon, err := CanonicalTime(l)
		if err != nil {
			return nil, fmt.Errorf("invalid slot label %q", l)
		}
		if _, dup := sc.index[canon]; dup {
			return nil, fmt.Errorf("duplicate slot label %q", l)
		}
		sc.index[canon] = struct{}{}
		sc.labels = append(sc.labels, canon)
	}
	return sc, nil
}

// IntervalSlots gera os horários de opening até closing (inclusive) a cada
// interval minutos. 8:00–18:00 de hora em hora dá 11 horários.
func IntervalSlots(opening, closing string, intervalMin int) (*SlotCatalog, error) {
	if intervalMin <= 0 {
		return nil, fmt.Errorf("slot interval must be positive")
	}

	start, err := minutesOf(opening)
	if err != nil {
		return nil, fmt.Errorf("invalid opening %q", opening)
	}
	end, err := minutesOf(closing)
	if err != nil {
		return nil, fmt.Errorf("invalid closing %q", closing)
	}
	if end < start {
		return nil, fmt.Errorf("closing %q before opening %q", closing, opening)
	}

	var labels []string
	for cur := start; cur <= end; cur += intervalMin {
		labels = append(labels, fmt.Sprintf("%d:%02d", cur/60, cur%60))
	}
	return NewSlotCatalog(labels)
}

func (sc *SlotCatalog) Labels() []string {
	out := make([]string, len(sc.labels))
	copy(out, sc.labels)
	return out
}

func (sc *SlotCatalog) Contains(label string) bool {
	_, ok := sc.index[label]
	return ok
}

// Resolve valida o formato e exige que o horário exista no catálogo.
func (sc *SlotCatalog) Resolve(label string) (string, error) {
	canon, err := CanonicalTime(label)
	if err != nil {
		return "", err
	}
	if !sc.Contains(canon) {
		return "", httperr.Validation("unknown_time_slot", "Horário fora da agenda.")
	}
	return canon, nil
}

// ===============================
// Service Catalog
// ===============================

type Service struct {
	Tag   string  `json:"tag"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ServiceCatalog struct {
	services []Service
	byTag    map[string]Service
}

func NewServiceCatalog(services []Service) (*ServiceCatalog, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("service catalog is empty")
	}

	c := &ServiceCatalog{byTag: make(map[string]Service, len(services))}
	for _, s := range services {
		if s.Tag == "" {
			return nil, fmt.Errorf("service without tag")
		}
		if _, dup := c.byTag[s.Tag]; dup {
			return nil, fmt.Errorf("duplicate service tag %q", s.Tag)
		}
		c.byTag[s.Tag] = s
		c.services = append(c.services, s)
	}
	return c, nil
}

func (c *ServiceCatalog) All() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

func (c *ServiceCatalog) Lookup(tag string) (Service, error) {
	s, ok := c.byTag[tag]
	if !ok {
		return Service{}, httperr.Validation("invalid_service_type", "Tipo de serviço inválido.")
	}
	return s, nil
}
