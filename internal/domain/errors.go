package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los mensajes son los que
// ve el usuario final, por eso van en español.
var (
	// Flujo de venta.
	ErrConfiguracionContable  = errors.New("configuración contable no encontrada para la sucursal seleccionada")
	ErrFechaLimiteExcedida    = errors.New("la fecha actual excede la fecha límite permitida para facturar")
	ErrRangoAgotado           = errors.New("se ha excedido el límite de facturas, por favor contactarse con el contador de la empresa")
	ErrCorrelativoInvalido    = errors.New("correlativo de factura inválido según la configuración contable")
	ErrCampoRequerido         = errors.New("campo requerido para generar una factura")
	ErrUsuarioNoAutorizado    = errors.New("el usuario no existe, está bloqueado o no ha sido confirmado")
	ErrFacturaVacia           = errors.New("la factura debe contener al menos un producto")
	ErrProductoNoEncontrado   = errors.New("uno de los productos ingresados no existe o ha sido eliminado")
	ErrInventarioNoEncontrado = errors.New("uno de los productos no fue encontrado, por favor revise el inventario de la sucursal")
	ErrExistenciaInsuficiente = errors.New("uno de los productos no cuenta con suficiente existencia, por favor revise el inventario de la sucursal")

	// ErrConflictoEscritura lo devuelve la capa de persistencia cuando la
	// transacción pierde una carrera (violación del único
	// (no_factura, codigo_num_factura) o fallo de serialización). El caso de
	// uso reintenta la transacción completa al recibirlo.
	ErrConflictoEscritura = errors.New("conflicto de escritura, reintente la operación")

	// Generales / auth.
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// EsErrorTerminal indica que el error no se corrige reintentando con otros
// datos: el rango de numeración se agotó o la configuración contable está
// corrupta. Requiere intervención del contador, no del cajero.
func EsErrorTerminal(err error) bool {
	return errors.Is(err, ErrRangoAgotado) || errors.Is(err, ErrCorrelativoInvalido)
}
