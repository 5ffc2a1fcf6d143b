package geo

// cityCenters holds approximate city-centre coordinates used when a location
// carries no coordinates of its own. Keys are the city names as stored.
var cityCenters = map[string]Coordinates{
	// Timiș
	"Timișoara":       {45.7489, 21.2087},
	"Lugoj":           {45.6867, 21.9033},
	"Buziaș":          {45.6500, 21.6000},
	"Jimbolia":        {45.7933, 20.7167},
	"Sânnicolau Mare": {46.0667, 20.6333},
	"Giroc":           {45.7333, 21.2500},
	"Dumbrăvița":      {45.7833, 21.2333},
	"Ghiroda":         {45.7667, 21.2833},
	// Arad
	"Arad":          {46.1667, 21.3167},
	"Ineu":          {46.4333, 21.8333},
	"Lipova":        {46.0833, 21.6833},
	"Chișineu-Criș": {46.5333, 21.5167},
	"Pâncota":       {46.3333, 21.7000},
	"Șicula":        {46.3667, 21.5833},
	"Ghioroc":       {46.1500, 21.5167},
	// Bihor
	"Oradea":   {47.0722, 21.9211},
	"Salonta":  {46.8000, 21.6500},
	"Beiuș":    {46.6667, 22.3500},
	"Marghita": {47.3500, 22.3333},
	"Aleșd":    {47.0667, 22.4000},
	"Vad":      {47.0333, 22.2333},
	// Cluj
	"Cluj-Napoca":   {46.7712, 23.6236},
	"Turda":         {46.5667, 23.7833},
	"Dej":           {47.1333, 23.8833},
	"Câmpia Turzii": {46.5500, 23.8833},
	"Gherla":        {47.0333, 23.9000},
	"Huedin":        {46.8667, 23.0333},
	// Brașov
	"Brașov":   {45.6427, 25.5887},
	"Făgăraș":  {45.8500, 24.9667},
	"Săcele":   {45.6167, 25.6833},
	"Codlea":   {45.7000, 25.4500},
	"Zărnești": {45.5667, 25.3333},
	// Constanța
	"Constanța": {44.1598, 28.6348},
	"Mangalia":  {43.8167, 28.5833},
	"Medgidia":  {44.2500, 28.2667},
	"Năvodari":  {44.3167, 28.6167},
	"Cernavodă": {44.3333, 28.0333},
	"Eforie":    {44.0500, 28.6333},
	// București
	"București": {44.4268, 26.1025},
	// Iași
	"Iași":         {47.1585, 27.6014},
	"Pașcani":      {47.2500, 26.7167},
	"Hârlău":       {47.4333, 26.9000},
	"Târgu Frumos": {47.2167, 27.0167},
	// Ilfov
	"Voluntari":        {44.4833, 26.1667},
	"Popești-Leordeni": {44.3833, 26.1667},
	"Buftea":           {44.5667, 25.9500},
	"Otopeni":          {44.5500, 26.0667},
	"Bragadiru":        {44.3833, 26.0167},
	"Pantelimon":       {44.4500, 26.2000},
}

// CityCenter returns the approximate centre of a known city.
func CityCenter(city string) (Coordinates, bool) {
	c, ok := cityCenters[city]
	return c, ok
}
