package network

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"assetdb/internal/apperr"
	"assetdb/internal/models"
	"assetdb/internal/store"
	"assetdb/internal/validate"
)

type SwitchService struct{ repo *SwitchRepo }

func NewSwitchService(r *SwitchRepo) *SwitchService { return &SwitchService{repo: r} }

func (s *SwitchService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

func (s *SwitchService) Create(ctx context.Context, f store.Fields) (*SwitchView, error) {
	name := str(f["name"])
	if _, ok := uintOf(f["model_id"]); name == "" || !ok {
		return nil, apperr.BadRequest("name and model_id are required")
	}
	if err := s.ensureUniqueName(ctx, name, 0); err != nil {
		return nil, err
	}
	sw, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByIDWithDetails(ctx, sw.ID)
}

func (s *SwitchService) List(ctx context.Context, search string) ([]SwitchView, error) {
	return s.repo.FindAllWithDetails(ctx, search, store.FindOptions{})
}

func (s *SwitchService) Get(ctx context.Context, id uint) (*SwitchView, error) {
	v, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("Not found id=%d", id)
	}
	return v, nil
}

func (s *SwitchService) ListByLocation(ctx context.Context, locationID uint) ([]models.Switch, error) {
	return s.repo.FindByLocation(ctx, locationID)
}

func (s *SwitchService) Update(ctx context.Context, id uint, f store.Fields) (*SwitchView, error) {
	if v, ok := f["name"]; ok {
		name := str(v)
		if name == "" {
			return nil, apperr.BadRequest("name and model_id are required")
		}
		if err := s.ensureUniqueName(ctx, name, id); err != nil {
			return nil, err
		}
	}
	if v, ok := f["model_id"]; ok {
		if _, ok := uintOf(v); !ok {
			return nil, apperr.BadRequest("name and model_id are required")
		}
	}
	sw, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if sw == nil {
		return nil, apperr.NotFound("Not found id=%d", id)
	}
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *SwitchService) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("Switch ID %d not found", id)
	}
	return fmt.Sprintf("Deleted Switch ID %d Successfully", id), nil
}

// ConnectedHardware возвращает hardware, подключённое к портам коммутатора.
func (s *SwitchService) ConnectedHardware(ctx context.Context, id uint) ([]ConnectedHardware, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Switch ID %d not found", id)
	}
	return s.repo.FindConnectedHardware(ctx, id)
}

func (s *SwitchService) ensureUniqueName(ctx context.Context, name string, self uint) error {
	other, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return apperr.BadRequest("Switch with name %q already exists", name)
	}
	return nil
}

/* ——— connections ——— */

type ConnectionService struct{ repo *ConnectionRepo }

func NewConnectionService(r *ConnectionRepo) *ConnectionService { return &ConnectionService{repo: r} }

func (s *ConnectionService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

func (s *ConnectionService) Create(ctx context.Context, f store.Fields) (*models.SwitchConnection, error) {
	switchID, okSw := uintOf(f["switch_id"])
	port := str(f["port"])
	_, okHw := uintOf(f["hardware_id"])
	if !okHw || !okSw || port == "" {
		return nil, apperr.BadRequest("hardware_id, switch_id, and port are required")
	}
	if err := s.ensurePortFree(ctx, switchID, port, 0); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, f)
}

// List отдаёт все подключения или только подключения одного hardware.
func (s *ConnectionService) List(ctx context.Context, hardwareID uint) ([]models.SwitchConnection, error) {
	if hardwareID != 0 {
		return s.repo.FindByHardware(ctx, hardwareID)
	}
	return s.repo.FindAll(ctx, store.FindOptions{OrderBy: "id"})
}

func (s *ConnectionService) Get(ctx context.Context, id uint) (*models.SwitchConnection, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("SwitchConnection ID %d not found", id)
	}
	return c, nil
}

func (s *ConnectionService) Update(ctx context.Context, id uint, f store.Fields) (*models.SwitchConnection, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := f["hardware_id"]; ok {
		if _, ok := uintOf(v); !ok {
			return nil, apperr.BadRequest("hardware_id, switch_id, and port are required")
		}
	}
	_, swSet := f["switch_id"]
	_, portSet := f["port"]
	if swSet || portSet {
		switchID, port := cur.SwitchID, cur.Port
		if swSet {
			v, ok := uintOf(f["switch_id"])
			if !ok {
				return nil, apperr.BadRequest("hardware_id, switch_id, and port are required")
			}
			switchID = v
		}
		if portSet {
			if port = str(f["port"]); port == "" {
				return nil, apperr.BadRequest("hardware_id, switch_id, and port are required")
			}
		}
		if err := s.ensurePortFree(ctx, switchID, port, id); err != nil {
			return nil, err
		}
	}
	c, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("SwitchConnection ID %d not found", id)
	}
	return c, nil
}

func (s *ConnectionService) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("SwitchConnection ID %d not found", id)
	}
	return fmt.Sprintf("Deleted SwitchConnection ID %d Successfully", id), nil
}

func (s *ConnectionService) ensurePortFree(ctx context.Context, switchID uint, port string, self uint) error {
	other, err := s.repo.FindBySwitchPort(ctx, switchID, port)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return apperr.BadRequest("Port %q on switch_id %d is already in use", port, switchID)
	}
	return nil
}

/* ——— interfaces ——— */

type InterfaceService struct{ repo *InterfaceRepo }

func NewInterfaceService(r *InterfaceRepo) *InterfaceService { return &InterfaceService{repo: r} }

func (s *InterfaceService) Count(ctx context.Context) (int64, error) { return s.repo.Count(ctx, nil) }

func (s *InterfaceService) Create(ctx context.Context, f store.Fields) (*models.NetworkInterface, error) {
	hwID, ok := uintOf(f["hardware_id"])
	name := str(f["interface_name"])
	if !ok || name == "" {
		return nil, apperr.BadRequest("hardware_id and interface_name are required")
	}
	if err := normalize(f); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, hwID, name, 0); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, f)
}

func (s *InterfaceService) List(ctx context.Context, hardwareID uint) ([]models.NetworkInterface, error) {
	if hardwareID != 0 {
		return s.repo.FindByHardwareID(ctx, hardwareID)
	}
	return s.repo.FindAll(ctx, store.FindOptions{OrderBy: "id"})
}

func (s *InterfaceService) Get(ctx context.Context, id uint) (*models.NetworkInterface, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.NotFound("NetworkInterface ID %d not found", id)
	}
	return n, nil
}

// FindByAddress ищет интерфейс по IP или MAC-адресу.
func (s *InterfaceService) FindByAddress(ctx context.Context, ip, mac string) (*models.NetworkInterface, error) {
	var (
		n   *models.NetworkInterface
		err error
	)
	switch {
	case ip != "":
		n, err = s.repo.FindByIP(ctx, ip)
	case mac != "":
		n, err = s.repo.FindByMAC(ctx, strings.ToLower(mac))
	default:
		return nil, apperr.BadRequest("ip or mac is required")
	}
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.NotFound("NetworkInterface not found")
	}
	return n, nil
}

func (s *InterfaceService) Update(ctx context.Context, id uint, f store.Fields) (*models.NetworkInterface, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := normalize(f); err != nil {
		return nil, err
	}
	_, hwSet := f["hardware_id"]
	_, nameSet := f["interface_name"]
	if hwSet || nameSet {
		hwID, name := cur.HardwareID, cur.InterfaceName
		if hwSet {
			v, ok := uintOf(f["hardware_id"])
			if !ok {
				return nil, apperr.BadRequest("hardware_id and interface_name are required")
			}
			hwID = v
		}
		if nameSet {
			if name = str(f["interface_name"]); name == "" {
				return nil, apperr.BadRequest("hardware_id and interface_name are required")
			}
		}
		if err := s.ensureUniqueName(ctx, hwID, name, id); err != nil {
			return nil, err
		}
	}
	n, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperr.NotFound("NetworkInterface ID %d not found", id)
	}
	return n, nil
}

func (s *InterfaceService) Delete(ctx context.Context, id uint) (string, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("NetworkInterface ID %d not found", id)
	}
	return fmt.Sprintf("Deleted NetworkInterface ID %d Successfully", id), nil
}

func (s *InterfaceService) ensureUniqueName(ctx context.Context, hwID uint, name string, self uint) error {
	other, err := s.repo.FindByHardwareAndName(ctx, hwID, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return apperr.BadRequest("Interface %q already exists for hardware_id %d", name, hwID)
	}
	return nil
}

func normalize(f store.Fields) error {
	if err := validate.Interface(f); err != nil {
		return apperr.BadRequest("%s", err.Error())
	}
	return nil
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func uintOf(v any) (uint, bool) {
	n, err := strconv.ParseUint(str(v), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
