// Package manager координирует конвейер обработки заказов.
//
// Manager отвечает за:
//   - Владение единственной PendingQueue и набором ботов
//   - Выдачу монотонно растущих номеров заказов и ботов
//   - Маршрутизацию новых заказов в очередь
//   - Создание и вывод ботов из эксплуатации (новейший снимается первым,
//     его заказ возвращается в голову очереди)
//   - Архив завершённых заказов и сводный снимок состояния
//   - Корректное завершение: остановка всех ботов с ожиданием выхода
//
// Manager — тонкая оркестрация: вся сложность конкурентности живёт
// в пакетах queue и bot.
package manager
