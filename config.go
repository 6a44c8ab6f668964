package resutils

const (
	WGS84_SRID = 4326

	// 固定的WGS84目标坐标系
	WGS84_WKT = `GEOGCS["WGS 84",
    DATUM["WGS_1984",
        SPHEROID["WGS 84",6378137,298.257223563,
            AUTHORITY["EPSG","7030"]],
        AUTHORITY["EPSG","6326"]],
    PRIMEM["Greenwich",0,
        AUTHORITY["EPSG","8901"]],
    UNIT["degree",0.01745329251994328,
        AUTHORITY["EPSG","9122"]],
    AUTHORITY["EPSG","4326"]]`

	TMP_TIF = "cls_%s.tif"
	CLS_TIF = "%s_cls_%s.tif"

	DEFAULT_PRECISION   = 2
	DEFAULT_MAX_EXTRA   = 6
	DEFAULT_OPACITY     = 1.0
	NODATA_CLASS        = 0
	MAX_BYTE_CLASSES    = 255
	FIRST_BIN_MARGIN    = 1.0
	NODATA_LABEL        = "no data"
	CLASS_LABEL_PATTERN = "%s < x <= %s"

	ENERGY_UNIT      = "kWh/year"
	COST_UNIT        = "Million of currency"
	COUNT_UNIT       = "-"
	LCOE_UNIT        = "currency/kWh"
	COST_SCALE       = 1e6
	PERCENT          = 100.0
	ENERGY_NAME_TPL  = "%s total energy production"
	COST_NAME_TPL    = "%s total setup costs"
	COUNT_NAME_TPL   = "Number of installed %s Systems"
	LCOE_NAME_TPL    = "Levelized Cost of %s Energy"
	ENERGY_DECIMALS  = 2
	LCOE_DECIMALS    = 2
	COST_DECIMALS    = 0
	COUNT_DECIMALS   = 0
	SHEET_INDICATORS = "indicators"
	SHEET_SYMBOLOGY  = "symbology"
)
