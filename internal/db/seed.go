package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

type seedField struct {
	Name          string
	DisplayName   string
	Unit          string
	DataType      string
	SelectOptions []string
	SortOrder     int
}

type seedDomain struct {
	Name      string
	SortOrder int
	Fields    []seedField
}

// defaultDomains is the catalog shipped with a fresh install. Seeding is
// idempotent so it can run on every startup.
var defaultDomains = []seedDomain{
	{
		Name:      "Cell",
		SortOrder: 1,
		Fields: []seedField{
			{Name: "chemistry", DisplayName: "Chemistry", DataType: types.DataTypeText, SortOrder: 1},
			{Name: "cell_format", DisplayName: "Cell Format", DataType: types.DataTypeSelect, SortOrder: 2,
				SelectOptions: []string{"Prismatic", "Pouch", "Cylindrical 1865", "Cylindrical 2170", "Cylindrical 4680", "Cylindrical 46120"}},
			{Name: "cell_supplier", DisplayName: "Cell Supplier", DataType: types.DataTypeText, SortOrder: 3},
			{Name: "cell_capacity_ah", DisplayName: "Cell Capacity", Unit: "Ah", DataType: types.DataTypeNumber, SortOrder: 4},
			{Name: "cell_nominal_voltage", DisplayName: "Cell Nominal Voltage", Unit: "V", DataType: types.DataTypeNumber, SortOrder: 5},
			{Name: "cell_weight_kg", DisplayName: "Cell Weight", Unit: "kg", DataType: types.DataTypeNumber, SortOrder: 6},
			{Name: "cell_dimensions_mm", DisplayName: "Cell Dimensions (LxWxH)", Unit: "mm", DataType: types.DataTypeText, SortOrder: 7},
		},
	},
	{
		Name:      "Cellblock rest",
		SortOrder: 2,
		Fields: []seedField{
			{Name: "module_count", DisplayName: "Module Count", DataType: types.DataTypeNumber, SortOrder: 1},
			{Name: "cells_per_module", DisplayName: "Cells per Module", DataType: types.DataTypeNumber, SortOrder: 2},
			{Name: "cells_total", DisplayName: "Total Cell Count", DataType: types.DataTypeNumber, SortOrder: 3},
			{Name: "configuration_sxp", DisplayName: "Configuration (sXp)", DataType: types.DataTypeText, SortOrder: 4},
			{Name: "module_weight_kg", DisplayName: "Module Weight", Unit: "kg", DataType: types.DataTypeNumber, SortOrder: 5},
		},
	},
	{
		Name:      "E/E",
		SortOrder: 3,
		Fields: []seedField{
			{Name: "voltage_architecture_v", DisplayName: "Voltage Architecture", Unit: "V", DataType: types.DataTypeSelect, SortOrder: 1,
				SelectOptions: []string{"400", "800"}},
			{Name: "obc_power_kw", DisplayName: "OBC Power", Unit: "kW", DataType: types.DataTypeNumber, SortOrder: 2},
			{Name: "bms_supplier", DisplayName: "BMS Supplier", DataType: types.DataTypeText, SortOrder: 3},
			{Name: "contactor_type", DisplayName: "Contactor Type", DataType: types.DataTypeText, SortOrder: 4},
			{Name: "precharge_circuit", DisplayName: "Precharge Circuit", DataType: types.DataTypeText, SortOrder: 5},
			{Name: "dcdc_converter", DisplayName: "DC-DC Converter", DataType: types.DataTypeText, SortOrder: 6},
		},
	},
	{
		Name:      "Housing",
		SortOrder: 4,
		Fields: []seedField{
			{Name: "pack_weight_kg", DisplayName: "Pack Weight", Unit: "kg", DataType: types.DataTypeNumber, SortOrder: 1},
			{Name: "pack_dimensions_lxwxh_mm", DisplayName: "Pack Dimensions (LxWxH)", Unit: "mm", DataType: types.DataTypeText, SortOrder: 2},
			{Name: "housing_material", DisplayName: "Housing Material", DataType: types.DataTypeText, SortOrder: 3},
			{Name: "ip_rating", DisplayName: "IP Rating", DataType: types.DataTypeText, SortOrder: 4},
			{Name: "structural_role", DisplayName: "Structural Role", DataType: types.DataTypeSelect, SortOrder: 5,
				SelectOptions: []string{"Cell-to-Pack", "Cell-to-Body", "Module-to-Pack", "Structural Battery"}},
		},
	},
	{
		Name:      "Thermal Management",
		SortOrder: 5,
		Fields: []seedField{
			{Name: "cooling_type", DisplayName: "Cooling Type", DataType: types.DataTypeSelect, SortOrder: 1,
				SelectOptions: []string{"Bottom plate", "Side cooling", "Immersion", "Tab cooling", "Top and bottom plate"}},
			{Name: "coolant_type", DisplayName: "Coolant Type", DataType: types.DataTypeText, SortOrder: 2},
			{Name: "cooling_plate_material", DisplayName: "Cooling Plate Material", DataType: types.DataTypeText, SortOrder: 3},
			{Name: "thermal_interface_material", DisplayName: "Thermal Interface Material", DataType: types.DataTypeText, SortOrder: 4},
			{Name: "heat_pump_integration", DisplayName: "Heat Pump Integration", DataType: types.DataTypeSelect, SortOrder: 5,
				SelectOptions: []string{"Yes", "No", "Unknown"}},
		},
	},
	{
		Name:      "Busbar",
		SortOrder: 6,
		Fields: []seedField{
			{Name: "busbar_material", DisplayName: "Busbar Material", DataType: types.DataTypeText, SortOrder: 1},
			{Name: "busbar_cross_section_mm2", DisplayName: "Busbar Cross Section", Unit: "mm²", DataType: types.DataTypeNumber, SortOrder: 2},
			{Name: "cell_connection_type", DisplayName: "Cell Connection Type", DataType: types.DataTypeSelect, SortOrder: 3,
				SelectOptions: []string{"Wire bonding", "Laser welding", "Ultrasonic welding", "Bolted", "Flexible busbar"}},
			{Name: "fuse_type", DisplayName: "Fuse Type", DataType: types.DataTypeText, SortOrder: 4},
		},
	},
	{
		Name:      "Other components",
		SortOrder: 7,
		Fields: []seedField{
			{Name: "gross_capacity_kwh", DisplayName: "Gross Capacity", Unit: "kWh", DataType: types.DataTypeNumber, SortOrder: 1},
			{Name: "net_capacity_kwh", DisplayName: "Net Capacity", Unit: "kWh", DataType: types.DataTypeNumber, SortOrder: 2},
			{Name: "max_charge_power_kw", DisplayName: "Max Charge Power", Unit: "kW", DataType: types.DataTypeNumber, SortOrder: 3},
			{Name: "max_discharge_power_kw", DisplayName: "Max Discharge Power", Unit: "kW", DataType: types.DataTypeNumber, SortOrder: 4},
			{Name: "pack_gravimetric_density_whkg", DisplayName: "Pack Gravimetric Energy Density", Unit: "Wh/kg", DataType: types.DataTypeNumber, SortOrder: 5},
			{Name: "pack_volumetric_density_whl", DisplayName: "Pack Volumetric Energy Density", Unit: "Wh/L", DataType: types.DataTypeNumber, SortOrder: 6},
		},
	},
}

// SeedDefaults inserts the default domains and fields that do not exist
// yet. Existing rows are left untouched.
func SeedDefaults(db *gorm.DB, log *logger.Logger) error {
	seedLog := log.With("service", "SeedDefaults")
	return db.Transaction(func(tx *gorm.DB) error {
		for _, sd := range defaultDomains {
			var domain types.Domain
			err := tx.Where("name = ?", sd.Name).First(&domain).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				domain = types.Domain{
					ID:        uuid.New(),
					Name:      sd.Name,
					SortOrder: sd.SortOrder,
					IsDefault: true,
				}
				if err := tx.Create(&domain).Error; err != nil {
					return fmt.Errorf("create domain %q: %w", sd.Name, err)
				}
				seedLog.Info("Created default domain", "domain", sd.Name)
			} else if err != nil {
				return fmt.Errorf("lookup domain %q: %w", sd.Name, err)
			}

			for _, sf := range sd.Fields {
				var count int64
				if err := tx.Model(&types.Field{}).
					Where("domain_id = ? AND name = ?", domain.ID, sf.Name).
					Count(&count).Error; err != nil {
					return fmt.Errorf("lookup field %q: %w", sf.Name, err)
				}
				if count > 0 {
					continue
				}
				field := types.Field{
					ID:          uuid.New(),
					DomainID:    domain.ID,
					Name:        sf.Name,
					DisplayName: sf.DisplayName,
					Unit:        sf.Unit,
					DataType:    sf.DataType,
					SortOrder:   sf.SortOrder,
					IsActive:    true,
				}
				if len(sf.SelectOptions) > 0 {
					raw, err := json.Marshal(sf.SelectOptions)
					if err != nil {
						return fmt.Errorf("marshal options for %q: %w", sf.Name, err)
					}
					field.SelectOptions = datatypes.JSON(raw)
				}
				if err := tx.Create(&field).Error; err != nil {
					return fmt.Errorf("create field %q: %w", sf.Name, err)
				}
			}
		}
		return nil
	})
}
