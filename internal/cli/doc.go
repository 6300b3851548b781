// Package cli реализует текстовый командный интерфейс ordersim.
//
// # Обзор
//
// CLI — тонкий слой поверх manager.Manager: разбирает строку команды,
// вызывает менеджер и форматирует структурированный результат. Сам
// разбор не делает блокирующего I/O и не печатает — это позволяет
// использовать Dispatch и в REPL, и в one-shot режиме, и в тестах.
//
// # Ключевые компоненты
//
// ## Dispatch
//
// Разбирает одну команду (без учёта регистра, с алиасами) и возвращает
// Result — флаг успеха, эхо команды, полезная нагрузка и текст ошибки
// с подсказкой. Неизвестная команда не меняет состояние системы.
//
// ## Result
//
// Структурированный результат команды. Полезная нагрузка — заказ,
// снимок бота, сводный Status либо маркеры ClearScreen / Exit.
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON — с флагом --json
//
// Данные выводятся в stdout, сообщения об ошибках — в stderr.
//
// ## REPL
//
// Цикл чтения команд из stdin с приглашением "> ". Завершается по
// команде exit/quit или EOF; остановку ботов выполняет вызывающая
// сторона (cmd/ordersim).
package cli
