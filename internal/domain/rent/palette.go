package rent

// MallColors colores de las barras esperado / recibido de un mall.
type MallColors struct {
	Expected string `json:"expected"`
	Received string `json:"received"`
}

// TotalColors colores del gráfico consolidado.
var TotalColors = MallColors{Expected: "#8884d8", Received: "#82ca9d"}

var palette = [...]MallColors{
	{Expected: "#8884d8", Received: "#82ca9d"},
	{Expected: "#ffc658", Received: "#ff8042"},
	{Expected: "#0088fe", Received: "#00c49f"},
	{Expected: "#ff6b81", Received: "#ff4757"},
	{Expected: "#a8e6cf", Received: "#dcedc1"},
}

// ColorsFor devuelve los colores del mall en la posición index.
// La paleta se recorre de forma cíclica: index 5 vuelve al color 0; los negativos también envuelven.
func ColorsFor(index int) MallColors {
	n := len(palette)
	return palette[((index%n)+n)%n]
}
